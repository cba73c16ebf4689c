// Package jobs provides scheduled background tasks for the freight engine.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds precision) and call
// command handlers exactly like the HTTP edge does.
//
// # Available Jobs
//
//  1. OfferExpiryJob - expires Pending offers whose deadline has passed
//
// # Usage
//
//	jobManager := jobs.NewJobManager().
//		Add("offer_expiry", jobs.NewOfferExpiryJob(expireHandler, "", 0, recorder, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. Offers of expeditions
// that did fail stay Pending until then.
package jobs
