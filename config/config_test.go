package config

import (
	"testing"

	utils "github.com/minaorangina/kabo/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("uses defaults when nothing is set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, Default(), cfg)
		utils.AssertEqual(t, cfg.Addr(), ":8000")
	})

	t.Run("reads the environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("KABO_CARDS_PER_PLAYER", "3")
		t.Setenv("KABO_MIN_PLAYERS", "3")
		t.Setenv("KABO_MAX_PLAYERS", "5")
		t.Setenv("KABO_SEED", "42")
		t.Setenv("KABO_ALLOWED_ORIGINS", "http://localhost:3000;https://kabo.example")

		cfg, err := Load()
		require.NoError(t, err)

		utils.AssertEqual(t, cfg.Port, "9090")
		utils.AssertEqual(t, cfg.CardsPerPlayer, 3)
		utils.AssertEqual(t, cfg.MinPlayers, 3)
		utils.AssertEqual(t, cfg.MaxPlayers, 5)
		utils.AssertEqual(t, cfg.Seed, int64(42))
		assert.Equal(t, []string{"http://localhost:3000", "https://kabo.example"}, cfg.AllowedOrigins)
	})

	t.Run("rejects a deal that would exhaust the deck", func(t *testing.T) {
		t.Setenv("KABO_CARDS_PER_PLAYER", "9")
		t.Setenv("KABO_MAX_PLAYERS", "6")

		_, err := Load()
		assert.ErrorIs(t, err, ErrTooManyCards)
	})

	t.Run("rejects an inverted player range", func(t *testing.T) {
		t.Setenv("KABO_MIN_PLAYERS", "5")
		t.Setenv("KABO_MAX_PLAYERS", "4")

		_, err := Load()
		assert.ErrorIs(t, err, ErrBadPlayerRange)
	})

	t.Run("rejects values that do not parse", func(t *testing.T) {
		for name, value := range map[string]string{
			"KABO_SEED":             "not-a-number",
			"KABO_MAX_PLAYERS":      "lots",
			"KABO_CARDS_PER_PLAYER": "4.5",
		} {
			t.Run(name, func(t *testing.T) {
				t.Setenv(name, value)

				cfg, err := Load()
				utils.AssertErrored(t, err)
				assert.Equal(t, Config{}, cfg)
			})
		}
	})
}
