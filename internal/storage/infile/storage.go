// Package infile provides a file-backed storage: every change is appended to a JSON-lines
// journal and the journal is replayed on start.
package infile

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/inmemory"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/modelstorage"
)

// Check interface implementation explicitly
var (
	_ storage.StudyStorage = (*Storage)(nil)
)

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	*inmemory.Storage
	path      string
	file      *os.File
	encoder   *json.Encoder
	closeOnce sync.Once
	closeErr  error
}

// InitStorage initializes a Storage object, restores the journal and closes the file once ctx is done.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config) (*Storage, error) {
	st := &Storage{path: cfg.FileStoragePath}
	st.Storage = inmemory.InitJournaledStorage(st.write)
	if err := st.restore(); err != nil {
		return nil, err
	}
	// open file outside of goroutine since this operation might not finish prior to encoding operations
	file, err := os.OpenFile(st.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	st.file = file
	st.encoder = json.NewEncoder(file)
	// listen for ctx cancellation followed by file storage closure,
	// use sync.WaitGroup to prevent goroutine premature termination when main exits
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := st.CloseDB(); err != nil {
			log.Println("Closing file storage:", err)
			return
		}
		log.Println("File storage closed successfully")
	}()
	return st, nil
}

// write appends one event to the journal; called under the in-memory storage lock.
func (s *Storage) write(event modelstorage.Event) error {
	return s.encoder.Encode(event)
}

// restore replays the journal into memory.
func (s *Storage) restore() error {
	file, err := os.OpenFile(s.path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	decoder := json.NewDecoder(file)
	count := 0
	for {
		var event modelstorage.Event
		err := decoder.Decode(&event)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := s.Apply(event); err != nil {
			return err
		}
		count++
	}
	log.WithField("events", count).Println("File storage was restored")
	return nil
}

// PingDB checks that the journal is still reachable.
func (s *Storage) PingDB() error {
	_, err := os.Stat(s.path)
	return err
}

// CloseDB flushes and closes the journal file.
func (s *Storage) CloseDB() error {
	s.closeOnce.Do(func() {
		if s.file == nil {
			return
		}
		if err := s.file.Sync(); err != nil {
			s.closeErr = err
		}
		if err := s.file.Close(); err != nil {
			s.closeErr = err
		}
	})
	return s.closeErr
}
