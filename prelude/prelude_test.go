package prelude

import (
	"io"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deosjr/scurry/scurry"
)

func TestPrelude(t *testing.T) {
	logger := log.New()
	logger.SetOutput(io.Discard)
	i := scurry.New(scurry.WithOutput(io.Discard), scurry.WithLogger(log.NewEntry(logger)))
	require.NoError(t, Load(i))
	assert.Equal(t, []string{"len", "map", "nth", "range", "reverse"}, i.Library())

	for n, tt := range []struct {
		input string
		want  string
	}{
		{
			input: "len[[1 2 3]];",
			want:  "3",
		},
		{
			input: "len[[]];",
			want:  "0",
		},
		{
			input: "nth[[5 6 7] 0];",
			want:  "5",
		},
		{
			input: "nth[[5 6 7] 2];",
			want:  "7",
		},
		{
			input: "car[catch[nth[[5] 3]]];",
			want:  "runtime error",
		},
		{
			input: "map[[1 2 3] : *[car[_] 10];];",
			want:  "[10 20 30]",
		},
		{
			input: "map[[] : 1;];",
			want:  "[]",
		},
		{
			input: "reverse[[1 2 3]];",
			want:  "[3 2 1]",
		},
		{
			input: "range[0 5];",
			want:  "[0 1 2 3 4]",
		},
		{
			input: "range[3 1];",
			want:  "[]",
		},
		{
			input: "map[reverse[range[1 4]] : +[car[_] 0.5];];",
			want:  "[3.5 2.5 1.5]",
		},
		{
			// a function returning early from inside map
			input: "len[map[range[0 4] : ~[string[car[_]]];]];",
			want:  "4",
		},
		{
			input: "len: 0; ; len;",
			want:  "0",
		},
	} {
		got, err := i.Eval(tt.input)
		if err != nil {
			t.Errorf("%d) unexpected error: %v", n, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("%d) got %s want %s", n, got, tt.want)
		}
	}
}

func TestSource(t *testing.T) {
	block, err := scurry.ParseString(Source())
	require.NoError(t, err)
	assert.Len(t, block, 5)
}
