/*
Package domain holds the shared data model for the tur engine: programs,
transitions, directions, execution modes, snapshots, and the error taxonomy.

It contains no behavior beyond construction helpers and serialization. The
parser (pkg/dsl) and decoder (pkg/codec) produce Programs; the analyzer
(pkg/analysis) checks them; machines (pkg/machine) execute them.
*/
package domain
