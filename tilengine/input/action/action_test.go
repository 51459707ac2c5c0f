package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerSelector(t *testing.T) {
	in := P2 | Left
	assert.Equal(t, Player2, in.Player())
	assert.Equal(t, Left, in.Base())
	assert.Equal(t, in, For(Player2, Left))
	assert.Equal(t, P3|Button1, For(Player3, P2|A))
	assert.Equal(t, Player1, Start.Player())
}

func TestInputString(t *testing.T) {
	tests := []struct {
		in   Input
		want string
	}{
		{Up, "up"},
		{Button6, "button6"},
		{P2 | Start, "p2.start"},
		{P4 | CRT, "p4.crt"},
		{Count, "input(15)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
		})
	}
}

func TestParse(t *testing.T) {
	in, ok := Parse("button3")
	assert.True(t, ok)
	assert.Equal(t, C, in)

	_, ok = Parse("jump")
	assert.False(t, ok)
}

func TestSystemInputs(t *testing.T) {
	assert.True(t, Quit.System())
	assert.True(t, (P2 | CRT).System())
	assert.True(t, Snapshot.System())
	assert.False(t, Start.System())
}
