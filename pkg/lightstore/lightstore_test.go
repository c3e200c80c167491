/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package lightstore

/*****************************************************************************************************************/

import (
	"testing"

	"github.com/lumenforge/envprobe/pkg/lightextract"
)

/*****************************************************************************************************************/

func TestSaveAndLoadRunRoundTrips(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	runID, err := NewRunID()
	if err != nil {
		t.Fatal(err)
	}

	lights := []lightextract.Light{
		{X: 0.1, Y: 0.2, W: 0.05, H: 0.05, Sum: 10},
		{X: 0.5, Y: 0.5, W: 0.02, H: 0.02, Sum: 25},
	}

	if err := store.SaveRun(runID, lights); err != nil {
		t.Fatal(err)
	}

	records, err := store.LoadRun(runID)
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 2 {
		t.Fatalf("len(records) = %d; want 2", len(records))
	}

	if records[0].Sum < records[1].Sum {
		t.Errorf("records not ordered by descending sum: %f before %f", records[0].Sum, records[1].Sum)
	}
}

/*****************************************************************************************************************/

func TestLoadRunReturnsEmptyForUnknownRunID(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	records, err := store.LoadRun("does-not-exist")
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 0 {
		t.Errorf("len(records) = %d; want 0", len(records))
	}
}

/*****************************************************************************************************************/

func TestNewRunIDProducesDistinctIDs(t *testing.T) {
	a, err := NewRunID()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRunID()
	if err != nil {
		t.Fatal(err)
	}

	if a == b {
		t.Errorf("NewRunID() returned identical IDs: %s", a)
	}
}

/*****************************************************************************************************************/
