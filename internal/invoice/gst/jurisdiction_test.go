package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		gstin   string
		state   string
		want    Jurisdiction
		wantErr error
	}{
		{"same state", "24ABCDE1234F1Z5", "24", Intrastate, nil},
		{"different state", "24ABCDE1234F1Z5", "27", Interstate, nil},
		{"blank customer code is export", "24ABCDE1234F1Z5", "", Export, nil},
		{"whitespace customer code is export", "24ABCDE1234F1Z5", "  ", Export, nil},
		{"export ignores missing gstin", "", "", Export, nil},
		{"missing gstin", "", "24", "", ErrMissingGSTIN},
		{"short gstin", "2", "24", "", ErrMissingGSTIN},
		{"one char state code", "24ABCDE1234F1Z5", "2", "", ErrInvalidStateCode},
		{"three char state code", "24ABCDE1234F1Z5", "240", "", ErrInvalidStateCode},
		{"two char gstin is enough", "27", "27", Intrastate, nil},
		{"trimmed state code", "27AAAAA0000A1Z5", " 27 ", Intrastate, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.gstin, tc.state)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSplitsTax(t *testing.T) {
	assert.True(t, Intrastate.SplitsTax())
	assert.False(t, Interstate.SplitsTax())
	assert.False(t, Export.SplitsTax())
}
