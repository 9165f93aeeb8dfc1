// Package chain links independent functions into an ordered chain that passes
// named values between them through a shared store.
//
// Each function is wrapped in an Action carrying its binding metadata: which
// store name feeds each parameter (MapArguments) and which store names receive
// its return value (Output). Execute runs every action in order, extracting
// its arguments from the store and merging its outputs back:
//
//	tarball := chain.Output("b")(chain.Fn("create_tarball", createTarball, "a"))
//	sign := chain.Output("c")(chain.Fn("sign_artifact", signArtifact, "b"))
//
//	c := chain.New("release")
//	c.Set("a", 1)
//	c.Append(tarball, sign)
//	res := c.Execute(ctx)
//
// Execute never returns an action's error. The run outcome is reported through
// the returned Result (also kept as LastResult): Succeeded is false and Err is
// the original error when an action fails. Actions started before the failure
// get their OnError hook called, most recently started first; every started
// action gets its Cleanup hook called afterwards, on success as well.
//
// Wrapping is idempotent. Applying Output and MapArguments to the same Unit, in
// either order, configures one single Action, and every chain the Unit is
// appended to uses that Action. A Registry only names actions; it keeps no
// wrapping state of its own.
//
// A Chain is not safe for concurrent use. Guard Execute with your own lock to
// share one chain across goroutines.
package chain
