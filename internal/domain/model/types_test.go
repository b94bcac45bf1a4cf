package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValue(t *testing.T) {
	v, err := StringList{"a", "b"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(v.([]byte)))

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(v.([]byte)))
}

func TestStringListScan(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan([]byte(`["x","y"]`)))
	assert.Equal(t, StringList{"x", "y"}, l)

	require.NoError(t, l.Scan(`["z"]`))
	assert.Equal(t, StringList{"z"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Equal(t, StringList{}, l)

	assert.Error(t, l.Scan(42))
}

func TestTaskSubmissionStatsStatus(t *testing.T) {
	assert.Equal(t, StatusNotStarted, TaskSubmissionStats{}.Status())
	assert.Equal(t, StatusAttempted, TaskSubmissionStats{Total: 3}.Status())
	assert.Equal(t, StatusSolved, TaskSubmissionStats{Total: 3, Correct: 1}.Status())
	// Wrong attempts after a correct one never demote the task.
	assert.Equal(t, StatusSolved, TaskSubmissionStats{Total: 10, Correct: 1}.Status())
}
