// Package main provides the entry point for the pagescore CLI.
//
// pagescore measures website performance through the PageSpeed Insights
// API. It runs an aggregator service that scores a URL for the mobile and
// desktop profiles at once, and a batch driver that feeds a list of URLs
// to that service and exports the results as CSV or XLS.
//
// Usage:
//
//	pagescore serve
//	pagescore check https://example.com
//	pagescore batch urls.txt
//
// See --help for all available options.
package main

func main() {
	Execute()
}
