// internal/player/mock.go
package player

import "sync"

// MockOutput is a test double for Output.
type MockOutput struct {
	mu        sync.Mutex
	openErr   error
	submitErr error
	sinks     []*MockSink
}

// NewMockOutput creates a new mock output for testing.
func NewMockOutput() *MockOutput {
	return &MockOutput{}
}

func (m *MockOutput) Open(format Format) (Sink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.openErr != nil {
		return nil, m.openErr
	}
	sink := &MockSink{format: format, submitErr: m.submitErr}
	m.sinks = append(m.sinks, sink)
	return sink, nil
}

// MockSink records every call made against one opened sink.
type MockSink struct {
	mu sync.Mutex

	format    Format
	submitted *PCMBuffer
	submitErr error
	consumed  bool

	pauseCalls  int
	resumeCalls int
	resetCalls  int
	closeCalls  int
}

func (s *MockSink) Submit(buf *PCMBuffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitErr != nil {
		return s.submitErr
	}
	s.submitted = buf
	return nil
}

func (s *MockSink) Consumed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consumed
}

func (s *MockSink) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pauseCalls++
}

func (s *MockSink) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeCalls++
}

func (s *MockSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetCalls++
}

func (s *MockSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeCalls++
}

// Test helpers

// SetOpenError makes subsequent Open calls fail.
func (m *MockOutput) SetOpenError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openErr = err
}

// SetSubmitError makes Submit fail on sinks opened after this call.
func (m *MockOutput) SetSubmitError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitErr = err
}

// Sinks returns every sink opened so far.
func (m *MockOutput) Sinks() []*MockSink {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*MockSink, len(m.sinks))
	copy(out, m.sinks)
	return out
}

// LastSink returns the most recently opened sink, or nil.
func (m *MockOutput) LastSink() *MockSink {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sinks) == 0 {
		return nil
	}
	return m.sinks[len(m.sinks)-1]
}

// SetConsumed marks the submitted buffer as played out.
func (s *MockSink) SetConsumed(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consumed = v
}

// SetSubmitError makes Submit fail.
func (s *MockSink) SetSubmitError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitErr = err
}

// Format returns the format the sink was opened with.
func (s *MockSink) Format() Format {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.format
}

// Submitted returns the buffer handed to Submit, or nil.
func (s *MockSink) Submitted() *PCMBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// PauseCalls returns how many times Pause was relayed.
func (s *MockSink) PauseCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pauseCalls
}

// ResumeCalls returns how many times Resume was relayed.
func (s *MockSink) ResumeCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumeCalls
}

// ResetCalls returns how many times Reset was called.
func (s *MockSink) ResetCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetCalls
}

// CloseCalls returns how many times Close was called.
func (s *MockSink) CloseCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeCalls
}

// Released reports whether the sink saw both Reset and Close.
func (s *MockSink) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetCalls > 0 && s.closeCalls > 0
}

// Verify MockOutput implements Output at compile time.
var _ Output = (*MockOutput)(nil)
