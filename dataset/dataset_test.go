package dataset

import (
	"reflect"
	"testing"
	"time"

	"github.com/rushteam/sarkit/core"
)

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		wantErr bool
	}{
		{name: "ok", schema: Schema{User: "u", Item: "i"}, wantErr: false},
		{name: "missing user", schema: Schema{Item: "i"}, wantErr: true},
		{name: "missing item", schema: Schema{User: "u"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !core.IsConfigurationError(err) {
				t.Errorf("error is not INVALID_CONFIG: %v", err)
			}
		})
	}
}

func TestSchema_Record(t *testing.T) {
	s := Schema{User: "uid", Item: "iid", Rating: "r", Timestamp: "ts"}
	row := map[string]any{
		"uid": "u1",
		"iid": "i1",
		"r":   int64(4),
		"ts":  "2024-01-02",
	}
	got, err := s.Record(row)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	want := core.Interaction{
		UserID:    "u1",
		ItemID:    "i1",
		Rating:    4,
		Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	if !got.Timestamp.Equal(want.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, want.Timestamp)
	}
	got.Timestamp, want.Timestamp = time.Time{}, time.Time{}
	if got != want {
		t.Errorf("Record() = %+v, want %+v", got, want)
	}
}

func TestSchema_Record_DefaultRating(t *testing.T) {
	s := Schema{User: "uid", Item: "iid"}
	got, err := s.Record(map[string]any{"uid": "u1", "iid": "i1"})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if got.Rating != 1 {
		t.Errorf("Rating = %v, want 1 for implicit feedback", got.Rating)
	}
}

func TestSchema_Record_Errors(t *testing.T) {
	s := Schema{User: "uid", Item: "iid", Rating: "r"}
	tests := []struct {
		name string
		row  map[string]any
	}{
		{name: "missing user", row: map[string]any{"iid": "i1", "r": 1.0}},
		{name: "empty item", row: map[string]any{"uid": "u1", "iid": "", "r": 1.0}},
		{name: "non numeric rating", row: map[string]any{"uid": "u1", "iid": "i1", "r": "high"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Record(tt.row)
			if !core.IsConfigurationError(err) {
				t.Errorf("Record() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestFromRows_FailFast(t *testing.T) {
	s := Schema{User: "uid", Item: "iid"}
	rows := []map[string]any{
		{"uid": "u1", "iid": "i1"},
		{"uid": "u2"},
		{"uid": "u3", "iid": "i3"},
	}
	_, err := FromRows(s, rows)
	if err == nil {
		t.Fatal("FromRows() expected error on bad row")
	}
	if !core.IsConfigurationError(err) {
		t.Errorf("wrapped error lost its code: %v", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	ref := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input any
		want  time.Time
	}{
		{name: "time.Time passthrough", input: ref, want: ref},
		{name: "RFC3339", input: "2024-03-15T10:30:00Z", want: ref},
		{name: "date time", input: "2024-03-15 10:30:00", want: ref},
		{name: "date only", input: "2024-03-15", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "unix seconds int", input: int64(1710498600), want: ref},
		{name: "unix seconds float", input: float64(1710498600), want: ref},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if err != nil {
				t.Fatalf("ParseTimestamp(%v) error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if _, err := ParseTimestamp("not a time"); err == nil {
		t.Error("ParseTimestamp() expected error for unparseable string")
	}
}

func splitFixture() []core.Interaction {
	recs := []core.Interaction{
		{UserID: "solo", ItemID: "i1", Rating: 1},
	}
	items := []string{"i1", "i2", "i3", "i4", "i5"}
	for _, u := range []string{"u1", "u2", "u3"} {
		for _, i := range items {
			recs = append(recs, core.Interaction{UserID: u, ItemID: i, Rating: 1})
		}
	}
	return recs
}

func TestStratifiedSplit_RatioValidation(t *testing.T) {
	for _, ratio := range []float64{0, 1, -0.5, 1.5} {
		if _, _, err := StratifiedSplit(splitFixture(), ratio, 1); !core.IsConfigurationError(err) {
			t.Errorf("ratio %v: error = %v, want INVALID_CONFIG", ratio, err)
		}
	}
}

func TestStratifiedSplit_Coverage(t *testing.T) {
	recs := splitFixture()
	train, test, err := StratifiedSplit(recs, 0.6, 42)
	if err != nil {
		t.Fatalf("StratifiedSplit() error = %v", err)
	}
	if len(train)+len(test) != len(recs) {
		t.Fatalf("split lost records: %d + %d != %d", len(train), len(test), len(recs))
	}

	trainUsers := make(map[string]struct{})
	trainItems := make(map[string]struct{})
	for _, rec := range train {
		trainUsers[rec.UserID] = struct{}{}
		trainItems[rec.ItemID] = struct{}{}
	}
	for _, rec := range test {
		if _, ok := trainUsers[rec.UserID]; !ok {
			t.Errorf("test user %q missing from train set", rec.UserID)
		}
		if _, ok := trainItems[rec.ItemID]; !ok {
			t.Errorf("test item %q missing from train set", rec.ItemID)
		}
		if rec.UserID == "solo" {
			t.Error("single-interaction user leaked into the test set")
		}
	}
}

func TestStratifiedSplit_Deterministic(t *testing.T) {
	recs := splitFixture()
	train1, test1, err := StratifiedSplit(recs, 0.7, 7)
	if err != nil {
		t.Fatalf("StratifiedSplit() error = %v", err)
	}
	train2, test2, err := StratifiedSplit(recs, 0.7, 7)
	if err != nil {
		t.Fatalf("StratifiedSplit() error = %v", err)
	}
	if !reflect.DeepEqual(train1, train2) || !reflect.DeepEqual(test1, test2) {
		t.Error("same seed produced different splits")
	}
}
