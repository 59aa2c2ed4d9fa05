package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMessages(t *testing.T) {
	tr := Default()
	data := map[string]string{"path": "/network/ethernets/eth0", "key": "foo", "value": `"bar"`}

	assert.Equal(t, "Unexpected keyword /network/ethernets/eth0/foo", tr.Message(KeyUnexpectedKeyword, data))
	assert.Equal(t, `Duplicate item /network/ethernets/eth0/"bar"`, tr.Message(KeyDuplicateItem, data))
	assert.Equal(t, `Unexpected value /network/ethernets/eth0: "bar"`, tr.Message(KeyUnexpectedValue, data))
	assert.Equal(t, "parser failed to parse the file", tr.Message(KeyParseError, nil))
}

func TestUnknownKeyEchoesKey(t *testing.T) {
	assert.Equal(t, "nope", Default().Message("nope", nil))
	assert.Equal(t, "nope", Lookup("ja").Message("nope", nil))
}

func TestLookupFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, Default().Message(KeyParseError, nil), Lookup("fr").Message(KeyParseError, nil))
	assert.NotEqual(t, Default().Message(KeyParseError, nil), Lookup("ja").Message(KeyParseError, nil))
}
