package common

import (
	"encoding/json"
	"testing"
)

func TestInt64Arg(t *testing.T) {
	tests := []struct {
		name        string
		args        map[string]interface{}
		key         string
		want        int64
		expectError bool
	}{
		{
			name: "json number as float64",
			args: map[string]interface{}{"project_id": float64(12345)},
			key:  "project_id",
			want: 12345,
		},
		{
			name: "string id",
			args: map[string]interface{}{"project_id": "67890"},
			key:  "project_id",
			want: 67890,
		},
		{
			name: "int64",
			args: map[string]interface{}{"project_id": int64(42)},
			key:  "project_id",
			want: 42,
		},
		{
			name: "int",
			args: map[string]interface{}{"project_id": 42},
			key:  "project_id",
			want: 42,
		},
		{
			name: "json.Number",
			args: map[string]interface{}{"project_id": json.Number("99")},
			key:  "project_id",
			want: 99,
		},
		{
			name:        "missing",
			args:        map[string]interface{}{},
			key:         "project_id",
			expectError: true,
		},
		{
			name:        "nil value",
			args:        map[string]interface{}{"project_id": nil},
			key:         "project_id",
			expectError: true,
		},
		{
			name:        "empty string",
			args:        map[string]interface{}{"project_id": ""},
			key:         "project_id",
			expectError: true,
		},
		{
			name:        "non-numeric string",
			args:        map[string]interface{}{"project_id": "abc"},
			key:         "project_id",
			expectError: true,
		},
		{
			name:        "wrong type",
			args:        map[string]interface{}{"project_id": true},
			key:         "project_id",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Int64Arg(tt.args, tt.key)
			if tt.expectError {
				if err == nil {
					t.Errorf("Int64Arg() expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Int64Arg() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Int64Arg() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOptionalInt64Arg(t *testing.T) {
	got, err := OptionalInt64Arg(map[string]interface{}{}, "todolist_id")
	if err != nil {
		t.Fatalf("OptionalInt64Arg() error = %v", err)
	}
	if got != 0 {
		t.Errorf("OptionalInt64Arg() = %d, want 0 for missing key", got)
	}

	got, err = OptionalInt64Arg(map[string]interface{}{"todolist_id": float64(7)}, "todolist_id")
	if err != nil {
		t.Fatalf("OptionalInt64Arg() error = %v", err)
	}
	if got != 7 {
		t.Errorf("OptionalInt64Arg() = %d, want 7", got)
	}

	if _, err := OptionalInt64Arg(map[string]interface{}{"todolist_id": "x"}, "todolist_id"); err == nil {
		t.Error("OptionalInt64Arg() expected error for malformed value")
	}
}

func TestStringArg(t *testing.T) {
	got, err := StringArg(map[string]interface{}{"content": "hello"}, "content")
	if err != nil {
		t.Fatalf("StringArg() error = %v", err)
	}
	if got != "hello" {
		t.Errorf("StringArg() = %q, want %q", got, "hello")
	}

	if _, err := StringArg(map[string]interface{}{}, "content"); err == nil {
		t.Error("StringArg() expected error for missing key")
	}
	if _, err := StringArg(map[string]interface{}{"content": ""}, "content"); err == nil {
		t.Error("StringArg() expected error for empty string")
	}
	if _, err := StringArg(map[string]interface{}{"content": 5}, "content"); err == nil {
		t.Error("StringArg() expected error for non-string value")
	}
}

func TestOptionalStringArg(t *testing.T) {
	if got := OptionalStringArg(map[string]interface{}{"status": "active"}, "status"); got != "active" {
		t.Errorf("OptionalStringArg() = %q, want %q", got, "active")
	}
	if got := OptionalStringArg(map[string]interface{}{}, "status"); got != "" {
		t.Errorf("OptionalStringArg() = %q, want empty", got)
	}
}

func TestOptionalBoolArg(t *testing.T) {
	if !OptionalBoolArg(map[string]interface{}{"completed": true}, "completed", false) {
		t.Error("OptionalBoolArg() = false, want true")
	}
	if !OptionalBoolArg(map[string]interface{}{}, "completed", true) {
		t.Error("OptionalBoolArg() did not fall back to default")
	}
	if OptionalBoolArg(map[string]interface{}{"completed": "yes"}, "completed", false) {
		t.Error("OptionalBoolArg() accepted a non-bool value")
	}
}

func TestInt64SliceArg(t *testing.T) {
	got, err := Int64SliceArg(map[string]interface{}{
		"assignee_ids": []interface{}{float64(1), "2", int64(3)},
	}, "assignee_ids")
	if err != nil {
		t.Fatalf("Int64SliceArg() error = %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("Int64SliceArg() = %v, want [1 2 3]", got)
	}

	got, err = Int64SliceArg(map[string]interface{}{}, "assignee_ids")
	if err != nil {
		t.Fatalf("Int64SliceArg() error = %v", err)
	}
	if got != nil {
		t.Errorf("Int64SliceArg() = %v, want nil for missing key", got)
	}

	if _, err := Int64SliceArg(map[string]interface{}{"assignee_ids": "1,2"}, "assignee_ids"); err == nil {
		t.Error("Int64SliceArg() expected error for non-list value")
	}
	if _, err := Int64SliceArg(map[string]interface{}{"assignee_ids": []interface{}{"x"}}, "assignee_ids"); err == nil {
		t.Error("Int64SliceArg() expected error for malformed element")
	}
}

func TestProjectIDFromArgs(t *testing.T) {
	if got := ProjectIDFromArgs(map[string]interface{}{"project_id": float64(123)}); got != 123 {
		t.Errorf("ProjectIDFromArgs() = %d, want 123", got)
	}
	if got := ProjectIDFromArgs(map[string]interface{}{}); got != 0 {
		t.Errorf("ProjectIDFromArgs() = %d, want 0 for missing key", got)
	}
	// Malformed values degrade to 0 rather than failing the metric path.
	if got := ProjectIDFromArgs(map[string]interface{}{"project_id": "abc"}); got != 0 {
		t.Errorf("ProjectIDFromArgs() = %d, want 0 for malformed value", got)
	}
	if got := ProjectIDFromArgs(nil); got != 0 {
		t.Errorf("ProjectIDFromArgs() = %d, want 0 for nil args", got)
	}
}
