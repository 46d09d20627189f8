package intelligence

import (
	"strings"

	"github.com/alexanderramin/learnhub/internal/domain"
)

var randomPhrases = []string{
	"random",
	"something interesting",
	"surprise me",
	"anything interesting",
}

// UserWantsRandom reports whether the input asks for an arbitrary selection
// rather than a targeted one. It only adds a prompt hint; no engine reads it.
func UserWantsRandom(userInput string) bool {
	return domain.ContainsAny(strings.ToLower(userInput), randomPhrases)
}
