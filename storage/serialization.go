// Copyright 2025 The Codex Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// LedgerEntryMUS serializes LedgerEntry with the MUS format: length-prefixed
// path, varint digest and count, IngestedAt as unix microseconds.
var LedgerEntryMUS = ledgerEntryMUS{}

type ledgerEntryMUS struct{}

func (ledgerEntryMUS) Size(entry LedgerEntry) int {
	return ord.String.Size(entry.Path) +
		varint.Uint64.Size(entry.ContentDigest) +
		varint.Int.Size(entry.PointCount) +
		varint.Int64.Size(entry.IngestedAt.UnixMicro())
}

func (ledgerEntryMUS) Marshal(entry LedgerEntry, bs []byte) (n int) {
	n = ord.String.Marshal(entry.Path, bs)
	n += varint.Uint64.Marshal(entry.ContentDigest, bs[n:])
	n += varint.Int.Marshal(entry.PointCount, bs[n:])
	n += varint.Int64.Marshal(entry.IngestedAt.UnixMicro(), bs[n:])
	return n
}

func (ledgerEntryMUS) Unmarshal(bs []byte) (entry LedgerEntry, n int, err error) {
	var n1 int
	entry.Path, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	entry.ContentDigest, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entry.PointCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entry.IngestedAt = time.UnixMicro(micros).UTC()
	return
}

// MarshalLedgerEntry serializes a LedgerEntry to bytes.
func MarshalLedgerEntry(entry *LedgerEntry) []byte {
	buf := make([]byte, LedgerEntryMUS.Size(*entry))
	LedgerEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalLedgerEntry deserializes a LedgerEntry from bytes.
func UnmarshalLedgerEntry(data []byte) (*LedgerEntry, error) {
	entry, _, err := LedgerEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &entry, nil
}
