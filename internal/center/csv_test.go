package center

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestDecode_SpecExample(t *testing.T) {
	input := "id,name,lat,lng,tags\nc1,Test Center,37.50,127.05,필기;실기(작업)\n"

	got, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Decode() returned %d records, want 1", len(got))
	}

	c := got[0]
	if c.ID != "c1" || c.Name != "Test Center" {
		t.Errorf("record = %+v, want id=c1 name=Test Center", c)
	}
	if c.Lat != 37.50 || c.Lng != 127.05 {
		t.Errorf("coords = (%v, %v), want (37.5, 127.05)", c.Lat, c.Lng)
	}
	if !reflect.DeepEqual(c.Tags, []string{"필기", "실기(작업)"}) {
		t.Errorf("tags = %v, want [필기 실기(작업)]", c.Tags)
	}
	if exam := Classify(c); exam != ExamPractical {
		t.Errorf("Classify() = %q, want %q", exam, ExamPractical)
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n"} {
		got, err := Decode([]byte(input))
		if err != nil {
			t.Errorf("Decode(%q) error = %v, want nil", input, err)
		}
		if len(got) != 0 {
			t.Errorf("Decode(%q) = %d records, want 0", input, len(got))
		}
	}
}

func TestDecode_MissingRequiredColumns(t *testing.T) {
	input := "id,name,address\nc1,Test Center,somewhere\n"

	_, err := Decode([]byte(input))
	if err == nil {
		t.Fatal("Decode() error = nil, want missing-column error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Decode() error type = %T, want *ParseError", err)
	}
	if !strings.Contains(err.Error(), "lat") || !strings.Contains(err.Error(), "lng") {
		t.Errorf("error %q does not name the missing columns", err)
	}
}

func TestDecode_HeaderCaseInsensitive(t *testing.T) {
	input := "ID,Name,LAT,Lng\nc1,Test Center,37.5,127.05\n"

	got, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "c1" || got[0].Lat != 37.5 {
		t.Errorf("Decode() = %+v, want one record with id=c1", got)
	}
}

func TestDecode_QuotedFields(t *testing.T) {
	input := `id,name,address,lat,lng
c1,"Kim, Lee ""and"" Park","multi
line address",37.5,127.05
`
	got, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Decode() returned %d records, want 1", len(got))
	}
	if got[0].Name != `Kim, Lee "and" Park` {
		t.Errorf("name = %q, quoting not honored", got[0].Name)
	}
	if got[0].Address != "multi\nline address" {
		t.Errorf("address = %q, embedded newline not preserved", got[0].Address)
	}
}

func TestDecode_InvalidCoordBecomesNaN(t *testing.T) {
	input := "id,name,lat,lng\nc1,Test Center,abc,127.05\n"

	got, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !math.IsNaN(got[0].Lat) {
		t.Errorf("lat = %v, want NaN for unparseable text", got[0].Lat)
	}
	// The validator, not the parser, rejects it.
	if err := Validate(got, nil); err == nil {
		t.Error("Validate() accepted a NaN coordinate")
	}
}

func TestDecode_BlankRowsSkipped(t *testing.T) {
	input := "id,name,lat,lng\nc1,A,37.5,127.05\n,,,\nc2,B,37.51,127.06\n"

	got, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Decode() = %d records, want 2 (blank row skipped)", len(got))
	}
}

func TestDecode_Idempotent(t *testing.T) {
	input := []byte("id,name,lat,lng,tags\nc1,A,37.5,127.05,필기|주차\nc2,B,37.51,127.06,\n")

	first, err := Decode(input)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	second, err := Decode(input)
	if err != nil {
		t.Fatalf("second Decode() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated decode differs:\n%+v\n%+v", first, second)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := []Center{
		{
			ID: "c1", Name: "필기시험장", Address: "성남시 수정구 123",
			Lat: 37.5, Lng: 127.05,
			Phone: "031-000-0000", Hours: "09:00-18:00", Note: `note with "quotes", comma`,
			Tags: []string{"필기", "실기(작업)", "주차가능"},
		},
		{ID: "c2", Name: "B", Lat: 37.44, Lng: 127.1},
	}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"semicolons", "a;b;c", []string{"a", "b", "c"}},
		{"pipes", "a|b", []string{"a", "b"}},
		{"commas inside quoted cell", "a,b", []string{"a", "b"}},
		{"mixed with whitespace", " a ; b |c", []string{"a", "b", "c"}},
		{"empty entries dropped", "a;;b;", []string{"a", "b"}},
		{"empty cell", "", nil},
		{"only separators", ";|,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitTags(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTags(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	got := string(Template())
	want := "id,name,address,lat,lng,phone,hours,note,tags\n"
	if got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
}
