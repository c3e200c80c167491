/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package parallel

/*****************************************************************************************************************/

import (
	"errors"
	"sync/atomic"
	"testing"
)

/*****************************************************************************************************************/

func TestForRowsCoversEveryRowExactlyOnce(t *testing.T) {
	const rows = 37

	var hits [rows]int32

	err := ForRows(rows, func(r RowRange) error {
		for j := r.Start; j < r.End; j++ {
			atomic.AddInt32(&hits[j], 1)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	for j, h := range hits {
		if h != 1 {
			t.Errorf("row %d touched %d times; want exactly 1", j, h)
		}
	}
}

/*****************************************************************************************************************/

func TestForRowsPropagatesError(t *testing.T) {
	wantErr := errors.New("boom")

	err := ForRows(8, func(r RowRange) error {
		if r.Start == 0 {
			return wantErr
		}
		return nil
	})

	if !errors.Is(err, wantErr) {
		t.Fatalf("ForRows error = %v; want %v", err, wantErr)
	}
}

/*****************************************************************************************************************/

func TestForRowsHandlesFewerRowsThanWorkers(t *testing.T) {
	var hits int32

	err := ForRows(1, func(r RowRange) error {
		atomic.AddInt32(&hits, int32(r.End-r.Start))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if hits != 1 {
		t.Errorf("hits = %d; want 1", hits)
	}
}

/*****************************************************************************************************************/
