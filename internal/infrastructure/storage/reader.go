package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
)

func (s *SnapshotService) Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	snap, err := readBinary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// LoadLatest читает самый свежий снимок каталога.
// Имена файлов начинаются с метки времени, поэтому свежий - последний по имени.
func (s *SnapshotService) LoadLatest() (*Snapshot, string, error) {
	paths, err := s.List()
	if err != nil {
		return nil, "", err
	}
	if len(paths) == 0 {
		return nil, "", ErrNoSnapshot
	}
	latest := paths[len(paths)-1]
	snap, err := s.Load(latest)
	return snap, latest, err
}

// List возвращает файлы снимков по возрастанию времени
func (s *SnapshotService) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), snapshotExt) {
			continue
		}
		paths = append(paths, filepath.Join(s.Dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadHeader читает только заголовок, без распаковки тела
func ReadHeader(r io.Reader) (SnapshotFileHeader, error) {
	var header SnapshotFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return header, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return header, ErrBadMagic
	}
	if header.Version != Version1 {
		return header, fmt.Errorf("%w: %d (expected %d)", ErrBadVersion, header.Version, Version1)
	}
	return header, nil
}

func readBinary(r io.Reader) (*Snapshot, error) {
	// 1. Читаем заголовок целиком
	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	// 2. Читаем и распаковываем тело
	body := make([]byte, header.BodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(body, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress body: %w", err)
	}

	snap := &Snapshot{Tick: header.Tick, Timestamp: header.Timestamp}
	if err := json.Unmarshal(raw, &snap.Characters); err != nil {
		return nil, fmt.Errorf("failed to decode characters: %w", err)
	}
	if len(snap.Characters) != int(header.Count) {
		return nil, fmt.Errorf("header count %d does not match body %d", header.Count, len(snap.Characters))
	}
	return snap, nil
}
