// Package leveldb stores the original text of each indexed document,
// keyed by its integer document id, so a caller can recover the source
// text or path a search result came from without re-reading the
// corpus. It does not duplicate anything the trie or stats table
// already own: no word postings, no per-term index, just document
// blobs.
package leveldb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"fts-hw/internal/corpus"
	"fts-hw/internal/lib/logger/sl"

	"github.com/syndtr/goleveldb/leveldb"
)

type Storage struct {
	log       *slog.Logger
	db        *leveldb.DB
	writeChan chan corpus.Document
	wg        sync.WaitGroup
}

var ErrNotFound = errors.New("doc not found")

const (
	bufferSize   = 1000
	flushTimeout = 2 * time.Second
)

func NewStorage(log *slog.Logger, path string) (*Storage, error) {
	const op = "storage.leveldb.New"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	storage := &Storage{
		log:       log,
		db:        db,
		writeChan: make(chan corpus.Document, bufferSize*2),
	}

	storage.wg.Add(1)
	go storage.writeWorker()

	return storage, nil
}

func docKey(id int) []byte {
	return []byte("doc:" + strconv.Itoa(id))
}

func (s *Storage) writeWorker() {
	defer s.wg.Done()

	batch := new(leveldb.Batch)
	ticker := time.NewTicker(flushTimeout)
	defer ticker.Stop()

	flush := func() {
		if batch.Len() == 0 {
			return
		}
		if err := s.db.Write(batch, nil); err != nil {
			s.log.Error("storage: failed to write batch", sl.Err(err))
		}
		batch = new(leveldb.Batch)
	}

	for {
		select {
		case doc, ok := <-s.writeChan:
			if !ok {
				flush()
				return
			}
			data, err := json.Marshal(doc)
			if err != nil {
				s.log.Error("storage: failed to marshal document", sl.Err(err), "doc_id", doc.ID)
				continue
			}
			batch.Put(docKey(doc.ID), data)
			if batch.Len() >= bufferSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// SaveDocument writes document synchronously.
func (s *Storage) SaveDocument(ctx context.Context, document corpus.Document) error {
	data, err := json.Marshal(document)
	if err != nil {
		return err
	}
	return s.db.Put(docKey(document.ID), data, nil)
}

// BatchDocument queues document for asynchronous, batched persistence.
func (s *Storage) BatchDocument(ctx context.Context, document corpus.Document) error {
	select {
	case s.writeChan <- document:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Storage) GetDocument(ctx context.Context, docID int) (corpus.Document, error) {
	data, err := s.db.Get(docKey(docID), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return corpus.Document{}, ErrNotFound
		}
		return corpus.Document{}, err
	}

	var doc corpus.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return corpus.Document{}, err
	}
	return doc, nil
}

func (s *Storage) DeleteDocument(ctx context.Context, docID int) error {
	return s.db.Delete(docKey(docID), nil)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) StopWorkers() {
	close(s.writeChan)
	s.wg.Wait()
}
