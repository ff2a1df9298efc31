package core

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tessro/printq/internal/timeutil"
)

func sampleQueue() Queue {
	return Queue{
		PrintTask{ID: "print-a", Name: "Phone Stand", DurationMinutes: 90},
		GapTask{ID: "gap-b", Name: "Prep Time", DurationMinutes: 15},
		WaitUntilTask{ID: "wait-c", Name: "Wait Until", WaitUntil: timeutil.MustParseClock("08:00")},
		PrintTask{ID: "print-d", Name: "Cable Clip", DurationMinutes: 20},
	}
}

func TestQueueAppend(t *testing.T) {
	q := sampleQueue()
	item := NewGap("Prep Time", 30)

	got := q.Append(item)

	if got.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", got.Len())
	}
	if got[4].ItemID() != item.ID {
		t.Errorf("tail = %q, want %q", got[4].ItemID(), item.ID)
	}
	if q.Len() != 4 {
		t.Errorf("input mutated: Len() = %d, want 4", q.Len())
	}
}

func TestQueueInsertAfter(t *testing.T) {
	tests := []struct {
		name    string
		afterID string
		want    []string
	}{
		{"middle", "gap-b", []string{"print-a", "gap-b", "new", "wait-c", "print-d"}},
		{"last", "print-d", []string{"print-a", "gap-b", "wait-c", "print-d", "new"}},
		{"missing id appends", "nonexistent-id", []string{"print-a", "gap-b", "wait-c", "print-d", "new"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := sampleQueue()
			got := q.InsertAfter(tt.afterID, GapTask{ID: "new", Name: "Prep Time", DurationMinutes: 5})
			if !reflect.DeepEqual(got.IDs(), tt.want) {
				t.Errorf("IDs() = %v, want %v", got.IDs(), tt.want)
			}
			if !reflect.DeepEqual(q, sampleQueue()) {
				t.Error("InsertAfter mutated its input")
			}
		})
	}
}

func TestQueueInsertAfterDoesNotAlias(t *testing.T) {
	q := make(Queue, 0, 10)
	q = append(q, sampleQueue()...)

	a := q.InsertAfter("print-a", GapTask{ID: "x"})
	b := q.InsertAfter("print-a", GapTask{ID: "y"})

	if a[1].ItemID() != "x" || b[1].ItemID() != "y" {
		t.Errorf("results share storage: a[1]=%q b[1]=%q", a[1].ItemID(), b[1].ItemID())
	}
}

func TestQueueRemoveByID(t *testing.T) {
	q := sampleQueue()

	got := q.RemoveByID("wait-c")
	if want := []string{"print-a", "gap-b", "print-d"}; !reflect.DeepEqual(got.IDs(), want) {
		t.Errorf("IDs() = %v, want %v", got.IDs(), want)
	}

	got = q.RemoveByID("missing")
	if !reflect.DeepEqual(got, q) {
		t.Error("RemoveByID(missing) changed the queue")
	}
}

func TestQueueArrange(t *testing.T) {
	q := sampleQueue()

	got := q.Arrange([]string{"print-d", "print-a", "gap-b", "wait-c"})
	if want := []string{"print-d", "print-a", "gap-b", "wait-c"}; !reflect.DeepEqual(got.IDs(), want) {
		t.Errorf("IDs() = %v, want %v", got.IDs(), want)
	}

	got = q.Arrange([]string{"wait-c", "bogus"})
	if want := []string{"wait-c", "print-a", "gap-b", "print-d"}; !reflect.DeepEqual(got.IDs(), want) {
		t.Errorf("partial Arrange IDs() = %v, want %v", got.IDs(), want)
	}
}

func TestQueueMove(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		delta int
		want  []string
	}{
		{"down one", "print-a", 1, []string{"gap-b", "print-a", "wait-c", "print-d"}},
		{"up one", "print-d", -1, []string{"print-a", "gap-b", "print-d", "wait-c"}},
		{"clamped top", "wait-c", -10, []string{"wait-c", "print-a", "gap-b", "print-d"}},
		{"clamped bottom", "print-a", 10, []string{"gap-b", "wait-c", "print-d", "print-a"}},
		{"missing", "nope", 1, []string{"print-a", "gap-b", "wait-c", "print-d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sampleQueue().Move(tt.id, tt.delta)
			if !reflect.DeepEqual(got.IDs(), tt.want) {
				t.Errorf("IDs() = %v, want %v", got.IDs(), tt.want)
			}
		})
	}
}

func TestQueueMoveSharedIDs(t *testing.T) {
	q := Queue{
		PrintTask{ID: "dup", Name: "First", DurationMinutes: 10},
		PrintTask{ID: "dup", Name: "Second", DurationMinutes: 20},
		GapTask{ID: "gap", Name: "Gap", DurationMinutes: 5},
	}

	got := q.Move("dup", 1)
	if len(got) != len(q) {
		t.Fatalf("len(Move()) = %d, want %d", len(got), len(q))
	}
	names := []string{got[0].ItemName(), got[1].ItemName(), got[2].ItemName()}
	want := []string{"Second", "First", "Gap"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
	if q[0].ItemName() != "First" {
		t.Errorf("Move() mutated receiver")
	}
}

func TestDuplicate(t *testing.T) {
	for _, item := range sampleQueue() {
		dup := Duplicate(item)

		if dup.ItemID() == item.ItemID() {
			t.Errorf("Duplicate(%s) kept id", item.ItemID())
		}
		if dup.Kind() != item.Kind() {
			t.Errorf("Duplicate(%s) kind = %s, want %s", item.ItemID(), dup.Kind(), item.Kind())
		}
		if !strings.HasPrefix(dup.ItemID(), string(item.Kind())+"-") {
			t.Errorf("Duplicate id %q missing kind prefix", dup.ItemID())
		}
		if !reflect.DeepEqual(dup.withID(item.ItemID()), item) {
			t.Errorf("Duplicate(%s) changed fields other than id", item.ItemID())
		}
	}
}

func TestQueueDuplicateByID(t *testing.T) {
	q := sampleQueue()

	got, dup, ok := q.DuplicateByID("gap-b")
	if !ok {
		t.Fatal("DuplicateByID() ok = false")
	}
	if got.Len() != 5 || got[4].ItemID() != dup.ItemID() {
		t.Errorf("duplicate not appended at tail: %v", got.IDs())
	}

	_, _, ok = q.DuplicateByID("missing")
	if ok {
		t.Error("DuplicateByID(missing) ok = true")
	}
}

func TestQueuePromoteToCurrent(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	q := sampleQueue()

	got, current, ok := q.PromoteToCurrent("print-a", now)
	if !ok {
		t.Fatal("PromoteToCurrent(print) ok = false")
	}
	if current.Task.ID != "print-a" {
		t.Errorf("current task = %q, want print-a", current.Task.ID)
	}
	if want := now.Add(90 * time.Minute); !current.EndTime.Equal(want) {
		t.Errorf("EndTime = %v, want %v", current.EndTime, want)
	}
	if want := []string{"gap-b", "wait-c", "print-d"}; !reflect.DeepEqual(got.IDs(), want) {
		t.Errorf("IDs() = %v, want %v", got.IDs(), want)
	}

	for _, id := range []string{"gap-b", "wait-c", "missing"} {
		got, current, ok := q.PromoteToCurrent(id, now)
		if ok || current != nil {
			t.Errorf("PromoteToCurrent(%s) = %v, %v; want rejection", id, current, ok)
		}
		if !reflect.DeepEqual(got, q) {
			t.Errorf("PromoteToCurrent(%s) changed the queue", id)
		}
	}
}

func TestDurationOf(t *testing.T) {
	q := sampleQueue()

	if d, ok := DurationOf(q[0]); !ok || d != 90 {
		t.Errorf("DurationOf(print) = %d, %v", d, ok)
	}
	if d, ok := DurationOf(q[1]); !ok || d != 15 {
		t.Errorf("DurationOf(gap) = %d, %v", d, ok)
	}
	if _, ok := DurationOf(q[2]); ok {
		t.Error("DurationOf(wait) ok = true")
	}
}
