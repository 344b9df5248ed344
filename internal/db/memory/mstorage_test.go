package memory

import (
	"errors"
	"sync"
	"testing"
)

type target struct {
	Key string
	Val int
}

func TestSet(t *testing.T) {
	type args[T any] struct {
		key  string
		val  *T
		m    *MStorage
		opts []func(*SetOptions)
	}
	type testCase[T any] struct {
		name    string
		args    args[T]
		wantErr error
	}
	ms := NewMemStorage()
	tests := []testCase[target]{
		{
			name: "default",
			args: args[target]{
				key:  "key1",
				val:  &target{Key: "key1", Val: 1},
				m:    ms,
				opts: nil,
			},
		}, {
			name: "duplicate records",
			args: args[target]{
				key:  "key1",
				val:  &target{Key: "key1", Val: 2},
				m:    ms,
				opts: nil,
			},
			wantErr: ErrDuplicateKey,
		}, {
			name: "overwrite",
			args: args[target]{
				key:  "key1",
				val:  &target{Key: "key1", Val: 3},
				m:    ms,
				opts: []func(*SetOptions){WithOverwrite()},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Set[target](t.Context(), tt.args.key, tt.args.val, tt.args.m, tt.args.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("%s: Set() error = %+v, wantErr %+v", tt.name, err, tt.wantErr)
			}

			if tt.wantErr == nil {
				val, getErr := Get[target](t.Context(), tt.args.key, tt.args.m)
				if getErr != nil {
					t.Fatal(getErr)
				}
				if val.Key != tt.args.val.Key || val.Val != tt.args.val.Val {
					t.Errorf("%s: Set() Val = %+v, want %+v", tt.name, val, tt.args.val)
				}
			}
		})
	}
}

func TestUpdate_Concurrent(t *testing.T) {
	ms := NewMemStorage()
	if err := Set[target](t.Context(), "k", &target{Key: "k"}, ms); err != nil {
		t.Fatal(err)
	}

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			_, err := Update[target](t.Context(), "k", ms, func(v *target) error {
				v.Val++
				return nil
			})
			if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	got, err := Get[target](t.Context(), "k", ms)
	if err != nil {
		t.Fatal(err)
	}
	if got.Val != workers {
		t.Errorf("Update() Val = %d, want %d", got.Val, workers)
	}

	if _, err = Update[target](t.Context(), "missing", ms, func(*target) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() missing key error = %v, want %v", err, ErrNotFound)
	}
}

func TestDelete(t *testing.T) {
	ms := NewMemStorage()
	if err := Set[target](t.Context(), "k", &target{Key: "k"}, ms); err != nil {
		t.Fatal(err)
	}

	if err := Delete(t.Context(), "k", ms); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if ms.IsExist("k") {
		t.Error("Delete() key still exists")
	}
	if err := Delete(t.Context(), "k", ms); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() second call error = %v, want %v", err, ErrNotFound)
	}
}
