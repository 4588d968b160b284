// Package provider implements the carrier synchronization engine.
//
// The engine pulls authoritative circuit data (costs, tickets, path archives)
// from carrier APIs and folds it into the local database. Carrier specifics
// live behind the Adapter contract; the engine owns the run lifecycle.
//
// # Architecture
//
// The engine consists of five components:
//
//  1. Adapter: the capability set every carrier integration implements.
//     Authenticate, ListRecords, RecordDetail and SyncCost are mandatory;
//     ticket sync, path sync and custom matching are optional capabilities
//     detected by type assertion.
//
//  2. Registry: process-wide lookup from provider-type key (e.g. "lumen")
//     to adapter factory. Adapters register themselves at import time.
//
//  3. Matcher: resolves a remote record to a local circuit by exact carrier
//     circuit-id equality scoped to the provider. Exactly one candidate is
//     required; zero is a skip, more than one is a failure.
//
//  4. Runner: drives one synchronization attempt end to end
//     (Init -> Authenticating -> Enumerating -> Processing -> Finalizing)
//     and tolerates per-record failure: once enumeration has produced
//     records, no single record can abort the run.
//
//  5. Engine: the invocation surface (RunTest, RunOne, RunDue) with
//     per-configuration mutual exclusion and a bounded worker pool for
//     bulk runs.
//
// # Failure model
//
// Authentication failure is fatal (nothing can succeed without a session);
// network auth errors get a bounded retry with backoff. Total enumeration
// failure is fatal; partial enumeration proceeds with a warning since the
// engine only upserts and never deletes by omission. Per-record fetch and
// sync errors are recorded against the record and the run continues. Every
// run, aborted or not, persists its outcome to the configuration's last-run
// fields so operators always see the most recent attempt.
//
// # Usage
//
//	engine := provider.NewEngine(store, logger, cfg.Sync)
//	summary, err := engine.RunOne(ctx, configID)
package provider
