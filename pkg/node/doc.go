/*
Package node binds a grammar file and a handful of numeric attributes to branch geometry, the
way a scene-graph node does in a host application.

A Node is recomputed whenever the host asks for its output. It rereads the grammar through a
ports.GrammarReader, reloads the engine only when the text hash changes, and skips the whole
rewrite when none of the inputs changed since the last call. An optional ports.BranchCache
shares results between processes.

	n := node.New(file.NewReader(), node.WithCache(redisCache), node.WithSeed(7))
	branches, err := n.Compute(ctx, node.Attributes{Grammar: "tree.lsys", StepSize: 1, Angle: 25, Time: 4})
*/
package node
