// Package global provides a process-wide default Registry and an installer
// that publishes it into a shared namespace.
//
// # Default Registry
//
// Code that prefers ambient access over passing a *wphook.Registry around can
// use the package-level functions, which all act on [Default]:
//
//	global.AddFilter("price", applyDiscount)
//	total := global.ApplyFilters("price", 100)
//
// # Installing Into a Namespace
//
// [Install] copies every hook operation, plus the registry itself under the
// name "hooks", into a [Namespace]. Names already bound in the namespace are
// left alone: the first binding wins, later installs never overwrite it.
//
//	ns := global.NewMapNamespace()
//	ns.Set("doAction", myDoAction) // host-provided binding survives
//	installed := global.Install(ns, global.Default())
//
// The luahooks package applies the same policy to a Lua state's globals.
package global
