// Package model defines the data structures shared by pagescore.
//
// This package contains the following main types:
//   - ScoreResult: the raw mobile and desktop payloads for one URL
//   - Document: an upstream payload decoded without a fixed schema
//   - Record: the flattened metrics of one URL, success or failure
//   - BatchRun: the ordered records of a batch and its progress
//
// Metric extraction never fails. A field the upstream did not send is
// reported as NotAvailable, and a URL that could not be evaluated gets a
// record whose metrics are all ErrorValue.
package model
