package execx

import (
	"context"
	"strings"
	"sync"
)

// Call records a single command invocation made against a Fake runner.
type Call struct {
	Name  string
	Args  []string
	Input []byte
}

// Command returns the invocation as a single space-joined string,
// convenient for assertions.
func (c Call) Command() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Response scripts the result of one matching invocation.
type Response struct {
	Output []byte
	Err    error
}

// Fake is a Runner for tests. Responses are matched by command prefix
// ("minikube status", "kubectl apply", ...); the first match wins.
// Repeated invocations of the same prefix consume queued responses in
// order, sticking on the last one once the queue is exhausted.
type Fake struct {
	mu        sync.Mutex
	responses map[string][]Response
	calls     []Call
}

// NewFake returns an empty Fake runner. Unscripted commands succeed
// with no output.
func NewFake() *Fake {
	return &Fake{responses: make(map[string][]Response)}
}

// Script queues a response for commands whose invocation string starts
// with prefix.
func (f *Fake) Script(prefix string, output string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[prefix] = append(f.responses[prefix], Response{Output: []byte(output), Err: err})
}

// Calls returns a copy of all recorded invocations.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CommandsRun returns the space-joined form of every invocation, in order.
func (f *Fake) CommandsRun() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Command()
	}
	return out
}

// Run implements Runner.
func (f *Fake) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	return f.record(nil, name, args)
}

// RunInput implements Runner.
func (f *Fake) RunInput(_ context.Context, input []byte, name string, args ...string) ([]byte, error) {
	return f.record(input, name, args)
}

func (f *Fake) record(input []byte, name string, args []string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := Call{Name: name, Args: args, Input: input}
	f.calls = append(f.calls, call)

	cmdline := call.Command()
	for prefix, queue := range f.responses {
		if !strings.HasPrefix(cmdline, prefix) {
			continue
		}
		resp := queue[0]
		if len(queue) > 1 {
			f.responses[prefix] = queue[1:]
		}
		return resp.Output, resp.Err
	}
	return nil, nil
}
