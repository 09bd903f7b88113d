// Package extractors provides the content-kind dispatch registry and
// hosts one sub-package per extraction strategy.
//
// Each strategy turns raw file bytes into zero or more articles. The
// strategies are independent: a failure in one file degrades to zero
// articles from that file and never affects another file's extraction.
package extractors
