package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

const (
	baseURL = "http://localhost:8080/encomenda/"
	fixedID = "1f7f44a5-0ad5-4b58-8a5c-55ff13b8a1f2"
)

func main() {
	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(doRequest)
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func randomID(length int) string {
	chars := []rune("abcdef0123456789")
	id := make([]rune, length)
	for i := range id {
		id[i] = chars[rand.Intn(len(chars))]
	}
	return string(id)
}

func doRequest() {
	id := fixedID
	if rand.Intn(5) == 0 {
		id = randomID(32)
	}

	url := baseURL + id
	resp, err := http.Get(url)
	if err != nil {
		fmt.Println("request failed:", err)
	} else {
		fmt.Println("GET", url, "->", resp.Status)
		resp.Body.Close()
	}
}
