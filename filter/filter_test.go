package filter

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/rushteam/sarkit/core"
	"github.com/rushteam/sarkit/store"
)

func recsFixture() []core.Recommendation {
	return []core.Recommendation{
		{UserID: "u1", ItemID: "i1", Score: 0.9},
		{UserID: "u1", ItemID: "i2", Score: 0.5},
		{UserID: "u1", ItemID: "i3", Score: 0.1},
		{UserID: "u2", ItemID: "i2", Score: 0.8},
		{UserID: "u2", ItemID: "i4", Score: 0.05},
	}
}

func itemIDs(recs []core.Recommendation) []string {
	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.UserID+"/"+rec.ItemID)
	}
	return ids
}

func TestBlacklist_InMemory(t *testing.T) {
	f := NewBlacklist([]string{"i2"}, nil, "")
	got, err := Apply(context.Background(), recsFixture(), f)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := []string{"u1/i1", "u1/i3", "u2/i4"}
	if !reflect.DeepEqual(itemIDs(got), want) {
		t.Errorf("Apply() = %v, want %v", itemIDs(got), want)
	}
}

func TestBlacklist_FromStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()

	data, _ := json.Marshal([]string{"i1", "i4"})
	if err := s.Set(ctx, "blacklist:test", data); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	f := NewBlacklist(nil, &StoreAdapter{Store: s}, "blacklist:test")
	got, err := Apply(ctx, recsFixture(), f)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := []string{"u1/i2", "u1/i3", "u2/i2"}
	if !reflect.DeepEqual(itemIDs(got), want) {
		t.Errorf("Apply() = %v, want %v", itemIDs(got), want)
	}
}

func TestBlacklist_StoreKeyMissing(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()

	// key 不存在按空黑名单处理
	f := NewBlacklist(nil, &StoreAdapter{Store: s}, "no-such-key")
	got, err := Apply(context.Background(), recsFixture(), f)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(got) != len(recsFixture()) {
		t.Errorf("missing key filtered records: got %d, want %d", len(got), len(recsFixture()))
	}
}

func TestExpression_ScoreThreshold(t *testing.T) {
	f, err := NewExpression("score < 0.1")
	if err != nil {
		t.Fatalf("NewExpression() error = %v", err)
	}
	got, err := Apply(context.Background(), recsFixture(), f)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := []string{"u1/i1", "u1/i2", "u1/i3", "u2/i2"}
	if !reflect.DeepEqual(itemIDs(got), want) {
		t.Errorf("Apply() = %v, want %v", itemIDs(got), want)
	}
}

func TestExpression_RankResetsPerUser(t *testing.T) {
	// rank 在每个用户的列表内从 0 重新计
	f, err := NewExpression("rank >= 1")
	if err != nil {
		t.Fatalf("NewExpression() error = %v", err)
	}
	got, err := Apply(context.Background(), recsFixture(), f)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := []string{"u1/i1", "u2/i2"}
	if !reflect.DeepEqual(itemIDs(got), want) {
		t.Errorf("Apply() = %v, want %v", itemIDs(got), want)
	}
}

func TestExpression_CompileErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "empty", expr: ""},
		{name: "syntax error", expr: "score <"},
		{name: "unknown variable", expr: "unknown_var > 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewExpression(tt.expr); !core.IsConfigurationError(err) {
				t.Errorf("NewExpression(%q) error = %v, want INVALID_CONFIG", tt.expr, err)
			}
		})
	}
}

func TestExpression_NonBooleanResult(t *testing.T) {
	f, err := NewExpression(`score + 1.0`)
	if err != nil {
		t.Fatalf("NewExpression() error = %v", err)
	}
	if _, err := f.ShouldFilter(context.Background(), core.Recommendation{Score: 1}, 0); err == nil {
		t.Error("ShouldFilter() expected error for non-boolean expression")
	}
}

func TestApply_MultipleFilters(t *testing.T) {
	bl := NewBlacklist([]string{"i4"}, nil, "")
	expr, err := NewExpression("score < 0.2")
	if err != nil {
		t.Fatalf("NewExpression() error = %v", err)
	}
	got, err := Apply(context.Background(), recsFixture(), bl, expr)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := []string{"u1/i1", "u1/i2", "u2/i2"}
	if !reflect.DeepEqual(itemIDs(got), want) {
		t.Errorf("Apply() = %v, want %v", itemIDs(got), want)
	}
}

func TestApply_NoFilters(t *testing.T) {
	recs := recsFixture()
	got, err := Apply(context.Background(), recs)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !reflect.DeepEqual(got, recs) {
		t.Error("Apply() without filters must return input unchanged")
	}
}
