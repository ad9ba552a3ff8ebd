// Package manifest registers hooks declaratively from a YAML document.
//
// # Format
//
//	hooks:
//	  - type: filter        # "action" or "filter"
//	    hook: price         # hook name
//	    callback: multiply  # name looked up in a Catalog
//	    args: [2]           # optional, passed to the callback factory
//	  - type: filter
//	    hook: price
//	    callback: increment
//	    tag: bump           # optional, defaults to the registry's price_N
//	  - type: action
//	    hook: saved
//	    callback: print
//
// Documents are checked against a JSON Schema before they are decoded, so
// typos such as an unknown key or an unsupported hook type are reported with
// the offending location.
//
// # Catalogs
//
// Callbacks are never loaded from the document itself. Each entry names a
// factory registered in a [Catalog]; the factory receives the entry's args and
// returns the callback. [Builtins] provides a small set of generic filters and
// actions.
//
//	m, err := manifest.Load("hooks.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := m.Apply(registry, manifest.Builtins(os.Stdout)); err != nil {
//	    return err
//	}
//
// [Manifest.Apply] resolves every entry before registering any of them, so a
// manifest either registers completely or not at all.
package manifest
