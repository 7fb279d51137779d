package board

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/service"
	"github.com/stretchr/testify/require"
)

type putCall struct {
	body any
	path string
}

// fakeAPI serves canned pages keyed by page number. Missing pages are empty.
type fakeAPI struct {
	pages     map[int]json.RawMessage
	failOn    map[int]error
	gets      []url.Values
	puts      []putCall
	putResult service.PutResult
	mu        sync.Mutex
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		pages:     make(map[int]json.RawMessage),
		failOn:    make(map[int]error),
		putResult: service.PutResult{Success: true},
	}
}

func (f *fakeAPI) Get(_ context.Context, _ string, query url.Values) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gets = append(f.gets, query)
	page, _ := strconv.Atoi(query.Get("page"))
	if err, ok := f.failOn[page]; ok {
		return nil, err
	}
	if raw, ok := f.pages[page]; ok {
		return raw, nil
	}
	return json.RawMessage(`[]`), nil
}

func (f *fakeAPI) Put(_ context.Context, path string, body any) service.PutResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.puts = append(f.puts, putCall{path: path, body: body})
	return f.putResult
}

func (f *fakeAPI) getCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.gets)
}

// recordPage builds a JSON array of n records with ids starting at first.
func recordPage(t *testing.T, first, n int, stage string) json.RawMessage {
	t.Helper()
	records := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, map[string]any{
			"Id":        first + i,
			"Reference": fmt.Sprintf("SO-%d", first+i),
			"Stage":     stage,
		})
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)
	return data
}
