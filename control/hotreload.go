// control/hotreload.go
// Author: momentics <momentics@gmail.com>
//
// Package-level config-reload hooks. A ConfigStore.SetConfig call (driven
// through api.Control.SetConfig, e.g. an operator toggling
// CompressionEnabled or an admission limit for the driver to pick up on its
// next request without a full orchestrator Stop/Start cycle) fans out to
// every hook registered here.

package control

var configReloadHooks []func()

// RegisterConfigReloadHook adds fn to the set of hooks invoked whenever any
// ConfigStore's SetConfig runs.
func RegisterConfigReloadHook(fn func()) {
	configReloadHooks = append(configReloadHooks, fn)
}

// TriggerConfigReload dispatches every registered hook asynchronously, one
// goroutine each, so a slow hook cannot delay the others.
func TriggerConfigReload() {
	for _, fn := range configReloadHooks {
		go fn()
	}
}

// TriggerConfigReloadSync invokes every registered hook synchronously and in
// registration order. ConfigStore.SetConfig uses this variant so a caller
// observing SetConfig's return already sees every hook's effect applied.
func TriggerConfigReloadSync() {
	for _, fn := range configReloadHooks {
		fn()
	}
}
