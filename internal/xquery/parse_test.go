package xquery

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	query := url.Values{
		"quantity": {"25"},
		"padded":   {" 12 "},
		"negative": {"-4"},
		"garbage":  {"ten"},
	}

	assert.Equal(t, 25, ParseInt(query, "quantity", 1))
	assert.Equal(t, 12, ParseInt(query, "padded", 1))
	assert.Equal(t, 7, ParseInt(query, "garbage", 7))
	assert.Equal(t, 3, ParseInt(query, "missing", 3))

	assert.Equal(t, 25, ParseIntMin(query, "quantity", 1))
	assert.Equal(t, 1, ParseIntMin(query, "negative", 1))
	assert.Equal(t, 1, ParseIntMin(query, "garbage", 1))
	assert.Equal(t, 1, ParseIntMin(query, "missing", 1))
}
