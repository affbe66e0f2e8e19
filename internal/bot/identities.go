package bot

import (
	"embed"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/identities.yaml
var embedded embed.FS

// BotIdentity describes one seat-filling bot.
type BotIdentity struct {
	ID          string `yaml:"id"`
	DisplayName string `yaml:"display_name"`
	CharacterID string `yaml:"character_id"`
	Difficulty  string `yaml:"difficulty"`
}

var (
	botIdentities []BotIdentity
	botIDMap      map[string]BotIdentity
	loadOnce      sync.Once
	loadErr       error
)

// LoadIdentities loads the bot profiles from the given path, or the built-in roster when path is empty.
// Only the first call has any effect.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		var r io.ReadCloser
		if path == "" {
			r, loadErr = embedded.Open("data/identities.yaml")
		} else {
			r, loadErr = os.Open(path)
		}
		if loadErr != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", loadErr)
			return
		}
		defer r.Close()

		ids, err := DecodeIdentities(r)
		if err != nil {
			loadErr = err
			return
		}
		setIdentities(ids)
	})
	return loadErr
}

// DecodeIdentities parses a YAML list of bot identities.
func DecodeIdentities(r io.Reader) ([]BotIdentity, error) {
	var ids []BotIdentity
	if err := yaml.NewDecoder(r).Decode(&ids); err != nil {
		return nil, fmt.Errorf("failed to decode bot identities: %w", err)
	}
	for i, id := range ids {
		if id.ID == "" {
			return nil, fmt.Errorf("bot identity %d has no id", i)
		}
	}
	return ids, nil
}

func setIdentities(ids []BotIdentity) {
	botIdentities = ids
	botIDMap = make(map[string]BotIdentity, len(ids))
	for _, identity := range ids {
		botIDMap[identity.ID] = identity
	}
}

// GetBotIdentity returns an identity for a bot by index (mod pool size).
func GetBotIdentity(index int) BotIdentity {
	if len(botIdentities) == 0 {
		return BotIdentity{
			ID:          fmt.Sprintf("bot-%d", index),
			DisplayName: fmt.Sprintf("AI Player %d", index),
		}
	}
	return botIdentities[index%len(botIdentities)]
}

// IsBot reports whether the given id belongs to the bot pool.
func IsBot(id string) bool {
	_, ok := botIDMap[id]
	return ok
}

// IdentityByID returns the identity registered under id.
func IdentityByID(id string) (BotIdentity, bool) {
	identity, ok := botIDMap[id]
	return identity, ok
}

// IdentityCount is the size of the loaded roster.
func IdentityCount() int {
	return len(botIdentities)
}
