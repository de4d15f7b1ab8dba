package depot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func restoreConfig(t *testing.T) {
	saved := Config
	t.Cleanup(func() { Config = saved })
}

func levelPtr(l zapcore.Level) *zapcore.Level {
	return &l
}

func TestConfigLoad(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantErr   bool
		wantStore int
		wantCache int
		wantLevel *zapcore.Level
	}{
		{
			name:      "Empty document keeps defaults",
			doc:       "",
			wantStore: 64,
			wantCache: 128,
		},
		{
			name: "All fields",
			doc: `
store_capacity: 256
cache_capacity: 8
log_level: debug
log_encoding: console
`,
			wantStore: 256,
			wantCache: 8,
			wantLevel: levelPtr(zapcore.DebugLevel),
		},
		{
			name:      "Partial",
			doc:       "cache_capacity: 32\nlog_level: warn\n",
			wantStore: 64,
			wantCache: 32,
			wantLevel: levelPtr(zapcore.WarnLevel),
		},
		{name: "Negative store capacity", doc: "store_capacity: -1", wantErr: true},
		{name: "Negative cache capacity", doc: "cache_capacity: -4", wantErr: true},
		{name: "Unknown level", doc: "log_level: loud", wantErr: true},
		{name: "Unknown encoding", doc: "log_level: info\nlog_encoding: xml", wantErr: true},
		{name: "Malformed YAML", doc: "store_capacity: [1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreConfig(t)
			Config = config{logger: Config.logger, storeCapacity: 64, cacheCapacity: 128}
			before := Config

			err := Config.Load(strings.NewReader(tt.doc))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, before, Config, "failed Load must not change config")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStore, Config.storeCapacity)
			assert.Equal(t, tt.wantCache, Config.cacheCapacity)
			if tt.wantLevel != nil {
				assert.True(t, Config.Logger().Core().Enabled(*tt.wantLevel))
				assert.False(t, Config.Logger().Core().Enabled(*tt.wantLevel-1))
			}
		})
	}
}

func TestConfigLoadInvalidValue(t *testing.T) {
	restoreConfig(t)

	err := Config.Load(strings.NewReader("cache_capacity: -2"))
	var cfgErr ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "cache_capacity", cfgErr.Field)
	assert.Equal(t, -2, cfgErr.Value)
}

func TestConfigSetters(t *testing.T) {
	restoreConfig(t)

	Config.SetLogger(nil)
	require.NotNil(t, Config.Logger())
	assert.False(t, Config.Logger().Core().Enabled(zapcore.ErrorLevel))

	Config.SetStoreCapacity(-3)
	assert.Zero(t, Config.storeCapacity)

	Config.SetStoreCapacity(2)
	storage := newTestStorage(posKind)
	for _, id := range storage.NewEntities(10) {
		require.NoError(t, posKind.Add(storage, id, Position{}))
	}
	assert.Equal(t, 10, storage.Len(posKind))

	Config.SetCacheCapacity(1)
	world := newTestWorld(posKind, velKind)
	world.Cache().IDsMatchingAll(posKind)
	world.Cache().IDsMatchingAll(velKind)
	assert.Equal(t, 1, world.Cache().Len())
}
