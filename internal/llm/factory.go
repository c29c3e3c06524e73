package llm

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nulzo/summary-gateway/internal/config"
)

// Descriptor is everything that differs between two providers: where to send
// the prompt, how to authenticate and how to shape the body.
type Descriptor struct {
	Name           ProviderName
	Label          string // human name used in error messages, e.g. "Anthropic"
	DefaultModel   string
	DefaultBaseURL string

	Endpoint func(baseURL, model, apiKey string) string
	Headers  func(cfg config.ProviderConfig) map[string]string
	Body     func(model, prompt string) interface{}
}

var (
	mu          sync.RWMutex
	descriptors = make(map[ProviderName]Descriptor)
)

// Register makes a provider available. Provider packages call it from init().
func Register(d Descriptor) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := descriptors[d.Name]; exists {
		panic(fmt.Sprintf("provider descriptor %s already registered", d.Name))
	}
	descriptors[d.Name] = d
}

func Get(name ProviderName) (Descriptor, error) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := descriptors[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownProvider, string(name))
	}
	return d, nil
}

// Registered returns the names of all registered providers, sorted.
func Registered() []ProviderName {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]ProviderName, 0, len(descriptors))
	for name := range descriptors {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
