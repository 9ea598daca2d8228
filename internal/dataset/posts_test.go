package dataset

import (
	"errors"
	"strings"
	"testing"
	"time"

	"viewsim/internal/simulation"
)

func seoul(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func TestReadPosts(t *testing.T) {
	loc := seoul(t)
	in := `post_id,stage,start_datetime,seed_offset
post_001,1,2025-09-16T10:00:00,0
post_002,2,2025-09-16 21:30:00,7
`
	posts, err := ReadPosts(strings.NewReader(in), loc)
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}

	p := posts[0]
	if p.ID != "post_001" || p.Stage != 1 || p.SeedOffset != 0 {
		t.Errorf("post 0 = %+v", p)
	}
	// Naive timestamps are interpreted in the engine zone, not UTC.
	if want := time.Date(2025, 9, 16, 10, 0, 0, 0, loc); !p.StartTime.Equal(want) {
		t.Errorf("post 0 start = %s, want %s", p.StartTime, want)
	}
	if posts[1].SeedOffset != 7 {
		t.Errorf("post 1 seed_offset = %d, want 7", posts[1].SeedOffset)
	}
}

func TestReadPosts_ExplicitOffsetWins(t *testing.T) {
	in := `post_id,stage,start_datetime
p,1,2025-09-16T10:00:00+02:00
`
	posts, err := ReadPosts(strings.NewReader(in), seoul(t))
	if err != nil {
		t.Fatal(err)
	}
	_, offset := posts[0].StartTime.Zone()
	if offset != 2*60*60 {
		t.Errorf("zone offset = %d seconds, want +02:00", offset)
	}
}

func TestReadPosts_SeedOffsetOptional(t *testing.T) {
	in := `post_id,stage,start_datetime
p,1,2025-09-16T10:00:00
`
	posts, err := ReadPosts(strings.NewReader(in), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if posts[0].SeedOffset != 0 {
		t.Errorf("seed_offset = %d, want 0", posts[0].SeedOffset)
	}
}

func TestReadPosts_Errors(t *testing.T) {
	cases := map[string]string{
		"missing column": "post_id,start_datetime\np,2025-09-16T10:00:00\n",
		"bad stage":      "post_id,stage,start_datetime\np,first,2025-09-16T10:00:00\n",
		"bad timestamp":  "post_id,stage,start_datetime\np,1,yesterday\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadPosts(strings.NewReader(in), time.UTC); !errors.Is(err, simulation.ErrInput) {
				t.Errorf("got %v, want ErrInput", err)
			}
		})
	}
}
