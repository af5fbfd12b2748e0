// Package report turns allocation tables into the run's durable
// artifacts: delimited text (CSV), spreadsheets (XLSX), and the
// end-of-run summary a human uses to audit data quality.
package report
