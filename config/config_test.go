package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConfig 测试创建默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)

	// 验证默认配置有效
	err := cfg.Validate()
	assert.NoError(t, err)

	t.Log("✅ NewConfig 测试通过")
}

// TestScopeConfig 测试作用域配置
func TestScopeConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cfg := DefaultScopeConfig()
		assert.Equal(t, 0, cfg.MaxGuardsPerScope)
	})

	t.Run("Validate_Negative", func(t *testing.T) {
		cfg := DefaultScopeConfig()
		cfg.MaxGuardsPerScope = -1
		err := cfg.Validate()
		assert.Error(t, err)
	})

	t.Run("WithMaxGuardsPerScope", func(t *testing.T) {
		cfg := DefaultScopeConfig().WithMaxGuardsPerScope(64)
		assert.Equal(t, 64, cfg.MaxGuardsPerScope)
	})

	t.Log("✅ ScopeConfig 测试通过")
}

// TestCleanupConfig 测试清理配置
func TestCleanupConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cfg := DefaultCleanupConfig()
		assert.Equal(t, 16, cfg.Shards)
		assert.Equal(t, 256, cfg.QueueSize)
		assert.Equal(t, 4, cfg.MaxConcurrent)
		assert.Equal(t, Duration(0), cfg.ReclaimInterval)
	})

	t.Run("Validate_Valid", func(t *testing.T) {
		err := DefaultCleanupConfig().Validate()
		assert.NoError(t, err)
	})

	t.Run("Validate_ZeroShards", func(t *testing.T) {
		cfg := DefaultCleanupConfig()
		cfg.Shards = 0
		err := cfg.Validate()
		assert.Error(t, err)
	})

	t.Run("Validate_ZeroMaxConcurrent", func(t *testing.T) {
		cfg := DefaultCleanupConfig()
		cfg.MaxConcurrent = 0
		err := cfg.Validate()
		assert.Error(t, err)
	})

	t.Run("WithBuilders", func(t *testing.T) {
		cfg := DefaultCleanupConfig().
			WithShards(64).
			WithQueueSize(1024).
			WithMaxConcurrent(16).
			WithReclaimInterval(Duration(time.Minute))
		assert.Equal(t, 64, cfg.Shards)
		assert.Equal(t, 1024, cfg.QueueSize)
		assert.Equal(t, 16, cfg.MaxConcurrent)
		assert.Equal(t, time.Minute, cfg.ReclaimInterval.Duration())
	})

	t.Log("✅ CleanupConfig 测试通过")
}

// TestReclaimConfig 测试不可达通知配置
func TestReclaimConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cfg := DefaultReclaimConfig()
		assert.Equal(t, ReclaimModeRuntime, cfg.Mode)
	})

	t.Run("Validate_AllModes", func(t *testing.T) {
		for _, mode := range []string{ReclaimModeRuntime, ReclaimModeManual, ReclaimModeDisabled} {
			cfg := ReclaimConfig{Mode: mode}
			assert.NoError(t, cfg.Validate(), "mode %s", mode)
		}
	})

	t.Run("Validate_UnknownMode", func(t *testing.T) {
		cfg := ReclaimConfig{Mode: "eager"}
		err := cfg.Validate()
		assert.Error(t, err)
	})

	t.Run("WithMode", func(t *testing.T) {
		cfg := DefaultReclaimConfig().WithMode(ReclaimModeManual)
		assert.Equal(t, ReclaimModeManual, cfg.Mode)
	})

	t.Log("✅ ReclaimConfig 测试通过")
}

// TestCacheConfig 测试弱引用缓存配置
func TestCacheConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cfg := DefaultCacheConfig()
		assert.Equal(t, CachePolicyNone, cfg.Policy)
		assert.Equal(t, 128, cfg.StrongCapacity)
	})

	t.Run("Validate_UnknownPolicy", func(t *testing.T) {
		cfg := DefaultCacheConfig().WithPolicy("fifo")
		err := cfg.Validate()
		assert.Error(t, err)
	})

	t.Run("Validate_LRUNeedsCapacity", func(t *testing.T) {
		cfg := DefaultCacheConfig().WithPolicy(CachePolicyLRU).WithStrongCapacity(0)
		err := cfg.Validate()
		assert.Error(t, err)
	})

	t.Run("Validate_NonePolicyIgnoresCapacity", func(t *testing.T) {
		cfg := DefaultCacheConfig().WithStrongCapacity(0)
		err := cfg.Validate()
		assert.NoError(t, err)
	})

	t.Log("✅ CacheConfig 测试通过")
}

// TestMetricsConfig 测试指标配置
func TestMetricsConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cfg := DefaultMetricsConfig()
		assert.False(t, cfg.Enabled)
		assert.Empty(t, cfg.Namespace)
	})

	t.Run("Validate_ValidNamespace", func(t *testing.T) {
		cfg := DefaultMetricsConfig().WithNamespace("lifecycle_v2")
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Validate_InvalidNamespace", func(t *testing.T) {
		cfg := DefaultMetricsConfig().WithNamespace("my-app")
		assert.Error(t, cfg.Validate())
	})

	t.Run("Validate_DigitPrefix", func(t *testing.T) {
		cfg := DefaultMetricsConfig().WithNamespace("2fast")
		assert.Error(t, cfg.Validate())
	})

	t.Log("✅ MetricsConfig 测试通过")
}

// TestLogConfig 测试日志配置
func TestLogConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cfg := DefaultLogConfig()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, LogFormatText, cfg.Format)
	})

	t.Run("Validate_UnknownLevel", func(t *testing.T) {
		cfg := DefaultLogConfig().WithLevel("verbose")
		assert.Error(t, cfg.Validate())
	})

	t.Run("Validate_UnknownFormat", func(t *testing.T) {
		cfg := DefaultLogConfig().WithFormat("xml")
		assert.Error(t, cfg.Validate())
	})

	t.Log("✅ LogConfig 测试通过")
}

// TestDuration 测试时长类型的 JSON 编解码
func TestDuration(t *testing.T) {
	t.Run("UnmarshalString", func(t *testing.T) {
		var d Duration
		err := json.Unmarshal([]byte(`"2m30s"`), &d)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Minute+30*time.Second, d.Duration())
	})

	t.Run("UnmarshalNanoseconds", func(t *testing.T) {
		var d Duration
		err := json.Unmarshal([]byte(`1000000000`), &d)
		require.NoError(t, err)
		assert.Equal(t, time.Second, d.Duration())
	})

	t.Run("UnmarshalInvalid", func(t *testing.T) {
		var d Duration
		err := json.Unmarshal([]byte(`"soon"`), &d)
		assert.Error(t, err)
	})

	t.Run("MarshalString", func(t *testing.T) {
		data, err := json.Marshal(Duration(90 * time.Second))
		require.NoError(t, err)
		assert.Equal(t, `"1m30s"`, string(data))
	})

	t.Log("✅ Duration 测试通过")
}

// TestFromJSON 测试从 JSON 加载配置
func TestFromJSON(t *testing.T) {
	t.Run("PartialOverride", func(t *testing.T) {
		data := []byte(`{
			"cleanup": {"shards": 32, "queue_size": 512, "max_concurrent": 8, "reclaim_interval": "1m"},
			"reclaim": {"mode": "manual"},
			"cache": {"policy": "lru", "strong_capacity": 256}
		}`)
		cfg, err := FromJSON(data)
		require.NoError(t, err)

		assert.Equal(t, 32, cfg.Cleanup.Shards)
		assert.Equal(t, 512, cfg.Cleanup.QueueSize)
		assert.Equal(t, 8, cfg.Cleanup.MaxConcurrent)
		assert.Equal(t, time.Minute, cfg.Cleanup.ReclaimInterval.Duration())
		assert.Equal(t, ReclaimModeManual, cfg.Reclaim.Mode)
		assert.Equal(t, CachePolicyLRU, cfg.Cache.Policy)

		// 未出现的字段保持默认值
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		_, err := FromJSON([]byte(`{`))
		assert.Error(t, err)
	})

	t.Log("✅ FromJSON 测试通过")
}

// TestToJSON 测试配置序列化
func TestToJSON(t *testing.T) {
	cfg := NewConfig()
	cfg.Cleanup.ReclaimInterval = Duration(2 * time.Minute)

	data, err := ToJSON(cfg)
	require.NoError(t, err)

	// 往返后字段保持一致
	loaded, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Cleanup, loaded.Cleanup)
	assert.Equal(t, cfg.Reclaim, loaded.Reclaim)

	t.Log("✅ ToJSON 测试通过")
}

// TestApplyPreset 测试预设配置
func TestApplyPreset(t *testing.T) {
	t.Run("Server", func(t *testing.T) {
		cfg := NewConfig()
		err := ApplyPreset(cfg, "server")
		require.NoError(t, err)

		assert.Equal(t, 64, cfg.Cleanup.Shards)
		assert.Equal(t, 16, cfg.Cleanup.MaxConcurrent)
		assert.Equal(t, CachePolicyLRU, cfg.Cache.Policy)
		assert.True(t, cfg.Metrics.Enabled)
		assert.NoError(t, cfg.Validate())
		assert.NoError(t, ValidateCompatibility(cfg))
	})

	t.Run("Test", func(t *testing.T) {
		cfg := NewConfig()
		err := ApplyPreset(cfg, "test")
		require.NoError(t, err)

		assert.Equal(t, ReclaimModeManual, cfg.Reclaim.Mode)
		assert.Equal(t, 1, cfg.Cleanup.MaxConcurrent)
		assert.NoError(t, cfg.Validate())
		assert.NoError(t, ValidateCompatibility(cfg))
	})

	t.Run("Minimal", func(t *testing.T) {
		cfg := NewConfig()
		err := ApplyPreset(cfg, "minimal")
		require.NoError(t, err)

		assert.Equal(t, 4, cfg.Cleanup.Shards)
		assert.Equal(t, CachePolicyNone, cfg.Cache.Policy)
		assert.False(t, cfg.Metrics.Enabled)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Empty", func(t *testing.T) {
		cfg := NewConfig()
		err := ApplyPreset(cfg, "")
		assert.NoError(t, err)
	})

	t.Run("Unknown", func(t *testing.T) {
		cfg := NewConfig()
		err := ApplyPreset(cfg, "cloud")
		assert.Error(t, err)
	})

	t.Log("✅ ApplyPreset 测试通过")
}

// TestValidateAndFix 测试配置自动修复
func TestValidateAndFix(t *testing.T) {
	t.Run("NilConfig", func(t *testing.T) {
		cfg, err := ValidateAndFix(nil)
		require.NoError(t, err)
		assert.NotNil(t, cfg)
	})

	t.Run("FixesZeroValues", func(t *testing.T) {
		cfg := &Config{} // 全零值
		fixed, err := ValidateAndFix(cfg)
		require.NoError(t, err)

		assert.Equal(t, ReclaimModeRuntime, fixed.Reclaim.Mode)
		assert.Equal(t, 16, fixed.Cleanup.Shards)
		assert.Equal(t, 4, fixed.Cleanup.MaxConcurrent)
		assert.Equal(t, CachePolicyNone, fixed.Cache.Policy)
		assert.Equal(t, "info", fixed.Log.Level)
		assert.NoError(t, fixed.Validate())
	})

	t.Run("FixesNegativeInterval", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Cleanup.ReclaimInterval = Duration(-time.Second)
		fixed, err := ValidateAndFix(cfg)
		require.NoError(t, err)
		assert.Equal(t, Duration(0), fixed.Cleanup.ReclaimInterval)
	})

	t.Run("UnfixableError", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Reclaim.Mode = "eager"
		_, err := ValidateAndFix(cfg)
		assert.Error(t, err)
	})

	t.Log("✅ ValidateAndFix 测试通过")
}

// TestValidateCompatibility 测试配置兼容性检查
func TestValidateCompatibility(t *testing.T) {
	t.Run("Compatible", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Cleanup.ReclaimInterval = Duration(time.Minute)
		assert.NoError(t, ValidateCompatibility(cfg))
	})

	t.Run("IntervalWithoutRuntimeMode", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Reclaim.Mode = ReclaimModeDisabled
		cfg.Cleanup.ReclaimInterval = Duration(time.Minute)
		assert.Error(t, ValidateCompatibility(cfg))
	})

	t.Run("NilConfig", func(t *testing.T) {
		assert.Error(t, ValidateCompatibility(nil))
	})

	t.Log("✅ ValidateCompatibility 测试通过")
}

// TestCloneConfig 测试配置克隆
func TestCloneConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Cleanup.Shards = 64

	cloned := CloneConfig(cfg)
	require.NotNil(t, cloned)
	assert.Equal(t, 64, cloned.Cleanup.Shards)

	// 修改克隆不影响原配置
	cloned.Cleanup.Shards = 8
	assert.Equal(t, 64, cfg.Cleanup.Shards)

	assert.Nil(t, CloneConfig(nil))

	t.Log("✅ CloneConfig 测试通过")
}

// TestMergeConfigs 测试配置合并
func TestMergeConfigs(t *testing.T) {
	base := NewConfig()
	override := NewConfig()
	override.Cleanup.Shards = 64

	merged, err := MergeConfigs(base, nil, override)
	require.NoError(t, err)
	assert.Equal(t, 64, merged.Cleanup.Shards)

	empty, err := MergeConfigs()
	require.NoError(t, err)
	assert.NotNil(t, empty)

	t.Log("✅ MergeConfigs 测试通过")
}
