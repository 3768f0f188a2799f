// Package params builds the configuration values that sparsecode models run from.
//
// A configuration is assembled in two phases. Raw fields are written by an
// ordered list of layers (base defaults, model defaults, file overrides and
// finally the shared fragment), after which Finalize derives helper fields,
// validates the result and hands back a value that is treated as immutable.
// Later layers always win over earlier ones.
//
// Every model type owns a statically typed struct that embeds Base and a
// Shared fragment. An Ensemble finalizes each member builder in turn; each
// member imports the shared fragment through its own SharedLayer, and the
// ensemble overlays the same fragment onto itself.
//
// Example:
//
//	shared := params.MNISTShared()
//	lca := params.NewLCABuilder(env, params.LCAMNIST, params.SharedLayer[params.LCA](shared))
//	mlp := params.NewMLPBuilder(env, params.MLPMNIST, params.SharedLayer[params.MLP](shared))
//	ensemble, err := params.NewEnsembleBuilder(env, shared, lca, mlp).Finalize()
package params
