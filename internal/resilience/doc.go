// Package resilience groups the fault tolerance helpers used for outbound calls:
// circuit breakers around the editor alert webhooks and retry with exponential
// backoff for webhooks and the startup database ping.
//
//	cb := circuitbreaker.New(circuitbreaker.WebhookConfig("slack"))
//	err := cb.Do(func() error {
//	    return retry.Do(ctx, retry.WebhookPolicy(), send)
//	})
package resilience
