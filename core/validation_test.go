package core

import (
	"errors"
	"testing"
)

func validPoint() *MemoryPoint {
	return &MemoryPoint{
		ID:     PointID("session-1.json", "msg-1", 0),
		Vector: []float32{0.1, 0.2, 0.3},
		Payload: PointPayload{
			Content:    "hello",
			SourceFile: "session-1.json",
			CommitID:   "abc123",
		},
	}
}

func TestValidatePoint(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MemoryPoint)
		wantErr error
	}{
		{
			name:    "valid point",
			mutate:  func(*MemoryPoint) {},
			wantErr: nil,
		},
		{
			name:    "empty id",
			mutate:  func(p *MemoryPoint) { p.ID = "" },
			wantErr: ErrInvalidPoint,
		},
		{
			name:    "empty vector",
			mutate:  func(p *MemoryPoint) { p.Vector = nil },
			wantErr: ErrEmptyVector,
		},
		{
			name:    "empty content",
			mutate:  func(p *MemoryPoint) { p.Payload.Content = "" },
			wantErr: ErrEmptyContent,
		},
		{
			name:    "missing source file",
			mutate:  func(p *MemoryPoint) { p.Payload.SourceFile = "" },
			wantErr: ErrMissingProvenance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPoint()
			tt.mutate(p)
			err := ValidatePoint(p, 0)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePoint() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePoint() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMessage(t *testing.T) {
	if err := ValidateMessage(Message{ID: "m1", Content: "hello"}); err != nil {
		t.Errorf("ValidateMessage() error = %v, want nil", err)
	}
	if err := ValidateMessage(Message{Content: "no id is fine"}); err != nil {
		t.Errorf("ValidateMessage() without id error = %v, want nil", err)
	}
	if err := ValidateMessage(Message{ID: "m2"}); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("ValidateMessage() empty content error = %v, want ErrEmptyContent", err)
	}
}

func TestValidatePoint_Nil(t *testing.T) {
	if err := ValidatePoint(nil, 0); !errors.Is(err, ErrInvalidPoint) {
		t.Errorf("ValidatePoint(nil) error = %v, want ErrInvalidPoint", err)
	}
}

func TestValidatePoint_VectorSize(t *testing.T) {
	p := validPoint()

	if err := ValidatePoint(p, 3); err != nil {
		t.Errorf("ValidatePoint() with matching size error = %v", err)
	}

	err := ValidatePoint(p, 384)
	if !errors.Is(err, ErrVectorSize) {
		t.Errorf("ValidatePoint() with mismatched size error = %v, want ErrVectorSize", err)
	}
}
