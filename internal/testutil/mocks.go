package testutil

import (
	"context"
	"fmt"

	"codeberg.org/snonux/vocabtrans/internal/vocab"
)

// MockBackend mocks a translation backend
type MockBackend struct {
	Translations map[string]string
	Errors       map[string]error
	// Fail makes every call return this error when set
	Fail  error
	Calls []string
}

// NewMockBackend creates a mock backend answering with translations
func NewMockBackend(translations map[string]string) *MockBackend {
	return &MockBackend{
		Translations: translations,
		Errors:       make(map[string]error),
	}
}

// Translate mocks translating text
func (m *MockBackend) Translate(ctx context.Context, text string) (string, error) {
	m.Calls = append(m.Calls, text)

	if m.Fail != nil {
		return "", m.Fail
	}

	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("es: %s", text), nil
}

// Name returns the mock backend name
func (m *MockBackend) Name() string {
	return "mock"
}

// MockStore mocks a vocabulary store holding entries in memory
type MockStore struct {
	Entries []*vocab.Entry
	LoadErr error
	SaveErr error
	Saves   int
}

// Load returns the stored entries
func (m *MockStore) Load() ([]*vocab.Entry, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Entries, nil
}

// Save counts the save and keeps the entries
func (m *MockStore) Save(entries []*vocab.Entry) error {
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Entries = entries
	return nil
}

// Path returns a fixed fake path
func (m *MockStore) Path() string {
	return "mock://vocabulary.json"
}
