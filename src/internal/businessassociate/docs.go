// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package businessassociate provides a typed client for the remote business
// associate REST API.
//
// Every operation maps onto one HTTP request against a base URL fixed at
// construction:
//
//	List    GET    {base}/api/v1/{type}
//	Create  POST   {base}/api/v1/{type}
//	Update  PUT    {base}/api/v1/{type}/{id}
//	Delete  DELETE {base}/api/v1/{type}/{id}
//
// Responses use the envelope {success, data, count, message}. Failures are
// split in two classes:
//
//   - Transport errors and non-2xx statuses are returned as errors ([*StatusError]
//     for the latter).
//   - An envelope that is missing, malformed or reports success=false collapses
//     to an empty result: an empty slice, a nil entity, or false. The remote
//     message is logged and not returned.
//
// Write payloads carry only the fields the caller supplied, so the remote
// system's own defaulting applies to everything else. See [Fields].
package businessassociate
