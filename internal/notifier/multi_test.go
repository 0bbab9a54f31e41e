package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type presenterFunc func(string)

func (f presenterFunc) Present(message string) { f(message) }

func TestMulti_PresentsOnEach(t *testing.T) {
	var got []string
	record := func(tag string) Presenter {
		return presenterFunc(func(m string) { got = append(got, tag+":"+m) })
	}

	Multi{record("a"), record("b")}.Present("M")

	assert.Equal(t, []string{"a:M", "b:M"}, got)
}
