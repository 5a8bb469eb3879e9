package store

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// FileStore persists the access token as a JSON document at the given URL.
// It is a lightweight way to keep a session alive across CLI invocations or
// single-host service restarts. Reads are served from memory; every write
// goes straight to storage so concurrent processes observe the same session.
type FileStore struct {
	mu    sync.RWMutex
	url   string
	fs    afs.Service
	token string
}

type fileSnapshot struct {
	AccessToken string `json:"accessToken"`
}

// NewFileStore creates a Store persisting the token at URL. A missing or
// unreadable file is treated as an empty session.
func NewFileStore(URL string) *FileStore {
	ret := &FileStore{url: URL, fs: afs.New()}
	ret.load()
	return ret
}

func (f *FileStore) Token() (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.token == "" {
		return "", false
	}
	return f.token, true
}

func (f *FileStore) SetToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	return f.save()
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	ctx := context.Background()
	if ok, _ := f.fs.Exists(ctx, f.url); !ok {
		return nil
	}
	return f.fs.Delete(ctx, f.url)
}

func (f *FileStore) save() error {
	data, err := json.Marshal(fileSnapshot{AccessToken: f.token})
	if err != nil {
		return err
	}
	return f.fs.Upload(context.Background(), f.url, file.DefaultFileOsMode, bytes.NewReader(data))
}

func (f *FileStore) load() {
	ctx := context.Background()
	if ok, _ := f.fs.Exists(ctx, f.url); !ok {
		return
	}
	data, err := f.fs.DownloadWithURL(ctx, f.url)
	if err != nil {
		return
	}
	var snap fileSnapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return
	}
	f.token = snap.AccessToken
}
