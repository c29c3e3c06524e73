package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	mockPort = 9091
	appPort  = 8081
)

var (
	geminiResp = []byte(`{"candidates":[{"content":{"parts":[{"text":"Resumen de benchmark"}]}}]}`)
	openaiResp = []byte(`{"id":"bench-123","choices":[{"message":{"role":"assistant","content":"Resumen de benchmark"}}]}`)
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Duration of the test")
	rate := flag.Int("rate", 50, "Requests per second")
	latency := flag.Duration("latency", 10*time.Millisecond, "Simulated upstream latency")
	failFirst := flag.Bool("fail-first", false, "Make the first provider answer 500 to exercise fallback")
	flag.Parse()

	var upstreamCalls atomic.Int64

	// start mock upstreams
	go startMockServer(*latency, *failFirst, &upstreamCalls)

	// build and start application
	fmt.Println("Building application...")
	buildCmd := exec.Command("go", "build", "-o", "bin/server", "./cmd/server")
	buildCmd.Stdout = os.Stdout
	buildCmd.Stderr = os.Stderr
	if err := buildCmd.Run(); err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	fmt.Println("Starting application...")
	cmd := exec.Command("./bin/server")
	cmd.Env = append(os.Environ(), benchEnv()...)

	// Redirect output to file for debugging
	logFile, _ := os.Create("bench_server.log")
	defer logFile.Close()
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	}()

	waitForApp(fmt.Sprintf("http://localhost:%d/health", appPort))

	mode := "first provider healthy"
	if *failFirst {
		mode = "first provider failing"
	}
	fmt.Printf("Running benchmark (%s): %s duration, %d req/s\n", mode, *duration, *rate)

	body := []byte(`{"sessionData":"Sitio: Estación Baquedano (Línea 1)\nDuración: 45 minutos\nAnotaciones realizadas: 3 marcaciones"}`)

	targeter := vegeta.NewStaticTargeter(vegeta.Target{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("http://localhost:%d/api/ai", appPort),
		Body:   body,
		Header: http.Header{
			"Content-Type": []string{"application/json"},
			"X-App-Name":   []string{"benchmark"},
		},
	})

	attacker := vegeta.NewAttacker(vegeta.KeepAlive(true))
	var metrics vegeta.Metrics

	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: *rate, Per: time.Second}, *duration, "Benchmark") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("--------------------------------------------------")
	fmt.Println("99th percentile: ", metrics.Latencies.P99)
	fmt.Println("Mean:            ", metrics.Latencies.Mean)
	fmt.Println("Max:             ", metrics.Latencies.Max)
	fmt.Printf("Success:         %.2f%%\n", metrics.Success*100)
	fmt.Printf("Throughput:      %.2f req/s\n", metrics.Throughput)
	if metrics.Requests > 0 {
		fmt.Printf("Upstream calls:  %.2f per request\n", float64(upstreamCalls.Load())/float64(metrics.Requests))
	}
	fmt.Println("--------------------------------------------------")

	if len(metrics.Errors) > 0 {
		fmt.Println("Error Set (first 5 unique):")

		uniqueErrors := make(map[string]bool)
		count := 0
		for _, msg := range metrics.Errors {
			if !uniqueErrors[msg] && count < 5 {
				fmt.Println(msg)

				uniqueErrors[msg] = true
				count++
			}
		}
	}
}

func benchEnv() []string {
	base := fmt.Sprintf("http://localhost:%d", mockPort)
	env := []string{
		fmt.Sprintf("SERVER_PORT=%d", appPort),
		"SERVER_ENV=production",
		"LOG_LEVEL=error",
		"PROVIDER_ORDER=gemini,groq,openai,anthropic",
		"RATE_LIMIT_REQUESTS_PER_SECOND=100000",
		"RATE_LIMIT_BURST=100000",
		"REDIS_ENABLED=false",
		"DATABASE_ENABLED=false",
		"UPDATE_CHECK_URL=",
	}
	for _, name := range []string{"GEMINI", "GROQ", "OPENAI", "ANTHROPIC", "OPENROUTER"} {
		env = append(env,
			name+"_API_KEY=bench-key",
			fmt.Sprintf("%s_BASE_URL=%s/%s", name, base, strings.ToLower(name)),
		)
	}
	return env
}

// startMockServer answers every provider under its own path prefix with a
// canned body shaped like that provider's real response.
func startMockServer(latency time.Duration, failFirst bool, calls *atomic.Int64) {
	mux := http.NewServeMux()

	reply := func(body []byte) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			time.Sleep(latency)
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
		}
	}

	gemini := reply(geminiResp)
	if failFirst {
		gemini = func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			time.Sleep(latency)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}

	mux.HandleFunc("/gemini/", gemini)
	mux.HandleFunc("/groq/", reply(openaiResp))
	mux.HandleFunc("/openai/", reply(openaiResp))
	mux.HandleFunc("/openrouter/", reply(openaiResp))
	mux.HandleFunc("/anthropic/", reply([]byte(`{"content":[{"type":"text","text":"Resumen de benchmark"}]}`)))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) })
	_ = http.ListenAndServe(fmt.Sprintf(":%d", mockPort), mux)
}

func waitForApp(url string) {
	for i := 0; i < 20; i++ {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	log.Fatal("App timed out")
}
