package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

var maxDevices int = 1000
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	deviceIDs := make([]string, maxDevices)
	for i := 0; i < maxDevices; i++ {
		deviceIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v device IDs\n", maxDevices)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			createAssociation(deviceIDs[i])
			fmt.Printf("\rcreated association for device %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rcreated association for %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			getActive(deviceIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"resolved active association for %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices)/usedTime.Seconds(),
	)
}

func createAssociation(deviceID string) {
	payload := map[string]any{
		"device_id":     deviceID,
		"plant_name":    "plant-" + deviceID[:8],
		"gps_latitude":  rnd.Float64()*180 - 90,
		"gps_longitude": rnd.Float64()*360 - 180,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(
		fmt.Sprintf("http://%s/device-plant/associate", httpHostPort),
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		log.Fatal("Failed to create association:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("unexpected status %v on associate", resp.StatusCode)
	}
}

func getActive(deviceID string) {
	resp, err := http.Get(fmt.Sprintf("http://%s/device-plant/active/%s", httpHostPort, deviceID))
	if err != nil {
		log.Fatal("Failed to get active association:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("unexpected status %v on active", resp.StatusCode)
	}
}
