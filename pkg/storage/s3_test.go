package storage

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressReaderMonotonic(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 1000)
	var reported []int
	pr := &progressReader{
		r:     bytes.NewReader(data),
		total: int64(len(data)),
		onProgress: func(pct int) {
			reported = append(reported, pct)
		},
	}

	// 按小块读取，产生多次进度回调
	buf := make([]byte, 64)
	for {
		_, err := pr.Read(buf)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}

	require.NotEmpty(t, reported)
	// 百分比单调不减且以100收尾
	last := 0
	for _, pct := range reported {
		assert.GreaterOrEqual(t, pct, last)
		assert.LessOrEqual(t, pct, 100)
		last = pct
	}
	assert.Equal(t, 100, reported[len(reported)-1])
}

func TestProgressReaderUnknownTotal(t *testing.T) {
	called := false
	pr := &progressReader{
		r:          strings.NewReader("hello"),
		total:      0,
		onProgress: func(int) { called = true },
	}
	_, err := io.ReadAll(pr)
	require.NoError(t, err)
	// 总大小未知时不回调进度
	assert.False(t, called)
}

func TestProgressReaderNilCallback(t *testing.T) {
	pr := &progressReader{r: strings.NewReader("hello"), total: 5}
	got, err := io.ReadAll(pr)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestObjectURL(t *testing.T) {
	s := &S3Store{bucket: "classroom", region: "eu-central-1", baseURL: "https://files.example.com"}
	assert.Equal(t, "https://files.example.com/classroom/uploads/1_a.png", s.ObjectURL("uploads/1_a.png"))

	s = &S3Store{bucket: "classroom", region: "eu-central-1"}
	assert.Equal(t, "https://classroom.s3.eu-central-1.amazonaws.com/uploads/1_a.png", s.ObjectURL("uploads/1_a.png"))
}
