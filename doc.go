// Package stacker values a personal precious metals stack.
//
// A stack is a list of holdings (coins, bars, rounds, junk silver) logged by
// the user. The package computes:
//   - the fine weight of a holding, purity applied (FineWeight),
//   - the performance of holdings at a spot price: cost basis, current value,
//     unrealized gain or loss, dollar cost average and return (Aggregate),
//   - the weight distribution per category or metal (Distribution),
//   - the value change since the previous session (ValueChange).
//
// Two weights coexist and are not interchangeable: the nominal weight
// (Holding.TotalOz) used for totals, charts and the stack market value, and
// the fine weight used for performance metrics.
//
// Every computation is pure. Parsing natural language, fetching spot prices
// and persisting stacks are done by the gemini, quote and store packages.
package stacker
