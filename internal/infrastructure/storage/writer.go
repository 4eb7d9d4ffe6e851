package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"skrillax-agent/internal/domain"
	"skrillax-agent/pkg/logger"

	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
)

const (
	MagicHeader string = `SKSN` // 4 байта
	Version1    uint32 = 1

	snapshotExt = ".sksn"
)

var (
	ErrBadMagic   = errors.New("not a snapshot file")
	ErrBadVersion = errors.New("unsupported snapshot version")
	ErrNoSnapshot = errors.New("no snapshot found")
)

// SnapshotFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type SnapshotFileHeader struct {
	Magic     [4]byte // 4 байта
	Version   uint32  // 4 байта
	Tick      uint64  // 8 байт
	Timestamp int64   // 8 байт
	Count     uint32  // 4 байта
	BodyLen   uint32  // 4 байта, длина сжатого тела
}

// Snapshot - сохраненные персонажи на момент тика
type Snapshot struct {
	Tick       uint64
	Timestamp  int64
	Characters []domain.CharacterState
}

// SnapshotService пишет и читает файлы снимков в каталоге Dir
type SnapshotService struct {
	Dir string
	log *logrus.Entry
}

func NewSnapshotService(dir string) (*SnapshotService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &SnapshotService{Dir: dir, log: logger.Component("snapshot")}, nil
}

// Save пишет снимок во временный файл и атомарно переименовывает его
func (s *SnapshotService) Save(tick uint64, states []domain.CharacterState) (string, error) {
	snap := Snapshot{Tick: tick, Timestamp: time.Now().UnixMilli(), Characters: states}
	filename := fmt.Sprintf("snapshot_%d_%08d%s", snap.Timestamp, tick, snapshotExt)
	path := filepath.Join(s.Dir, filename)

	tmp, err := os.CreateTemp(s.Dir, "snapshot-*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if err := writeBinary(tmp, &snap); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"path":       path,
		"tick":       tick,
		"characters": len(states),
	}).Info("Snapshot saved")
	return path, nil
}

func writeBinary(w io.Writer, s *Snapshot) error {
	// 1. Сжимаем тело: JSON массив персонажей
	raw, err := json.Marshal(s.Characters)
	if err != nil {
		return fmt.Errorf("failed to encode characters: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return err
	}
	body := enc.EncodeAll(raw, nil)
	_ = enc.Close()

	// 2. Подготавливаем и пишем заголовок
	header := SnapshotFileHeader{
		Version:   Version1,
		Tick:      s.Tick,
		Timestamp: s.Timestamp,
		Count:     uint32(len(s.Characters)),
		BodyLen:   uint32(len(body)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 3. Пишем тело
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	return nil
}
