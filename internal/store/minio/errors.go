package minio

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/harborview/gateway/internal/errs"
	miniogo "github.com/minio/minio-go/v7"
)

// mapError translates a MinIO SDK error into a *errs.Error, attaching the
// bucket/key context the caller supplied. It is total: every input maps to
// exactly one normalized error, and the raw SDK error only survives in the
// Cause field, which is logged but never serialized to clients.
func mapError(err error, msg, bucket, key string) *errs.Error {
	if err == nil {
		return nil
	}
	return classify(err, msg).WithDetail("bucket", bucket).WithDetail("key", key)
}

func classify(err error, msg string) *errs.Error {
	// Context expiry / caller cancellation
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(errs.CodeServiceTimeout, msg+": deadline exceeded", err)
	}
	if errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.CodeServiceTimeout, msg+": request cancelled", err)
	}

	// The SDK exposes a typed ErrorResponse for S3-protocol errors
	var resp miniogo.ErrorResponse
	if errors.As(err, &resp) {
		if e := classifyS3Code(resp.Code, msg, err); e != nil {
			return e
		}
		if e := classifyStatus(resp, msg, err); e != nil {
			return e
		}
		// Recognized shape, unrecognized content: safe generic message only.
		return errs.Wrap(errs.CodeInternalError, msg+": unrecognized store error", err)
	}

	// Transport-level failures (DNS, refused connection, reset, TLS)
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return errs.Wrap(errs.CodeNetworkError, msg+": store unreachable", err)
	}

	return errs.Wrap(errs.CodeInternalError, msg+": unexpected error", err)
}

// classifyS3Code maps the closed set of recognized S3 error identifiers.
// Returns nil when the code is not recognized.
func classifyS3Code(code, msg string, err error) *errs.Error {
	switch code {
	case "NoSuchBucket":
		return errs.Wrap(errs.CodeBucketNotFound, msg+": bucket does not exist", err)
	case "NoSuchKey", "NoSuchObject", "NoSuchVersion":
		return errs.Wrap(errs.CodeObjectNotFound, msg+": object does not exist", err)
	case "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "InvalidToken":
		return errs.Wrap(errs.CodeAuthInvalidCredentials, msg+": invalid credentials", err)
	case "MissingSecurityHeader", "MissingAuthenticationToken":
		return errs.Wrap(errs.CodeAuthMissingCredentials, msg+": missing credentials", err)
	case "AccessDenied", "AllAccessDisabled":
		return errs.Wrap(errs.CodeAuthPermissionDenied, msg+": access denied", err)
	case "InvalidBucketName", "InvalidObjectName", "KeyTooLongError", "XMinioInvalidObjectName":
		return errs.Wrap(errs.CodeValidationInvalidKey, msg+": invalid bucket or object name", err)
	case "InvalidRange":
		return errs.Wrap(errs.CodeValidationInvalidRange, msg+": requested range not satisfiable", err)
	case "EntityTooLarge", "MaxMessageLengthExceeded":
		return errs.Wrap(errs.CodeValidationFileTooLarge, msg+": payload too large", err)
	case "InvalidArgument", "MalformedXML", "InvalidRequest":
		return errs.Wrap(errs.CodeValidationInvalidParam, msg+": invalid request parameter", err)
	case "BucketAlreadyExists", "BucketAlreadyOwnedByYou":
		return errs.Wrap(errs.CodeResourceConflict, msg+": bucket already exists", err)
	case "SlowDown", "TooManyRequests":
		return errs.Wrap(errs.CodeServiceRateLimited, msg+": store is throttling requests", err)
	case "RequestTimeout", "RequestTimeTooSkewed":
		return errs.Wrap(errs.CodeServiceTimeout, msg+": store timed out", err)
	case "ServiceUnavailable", "InternalError":
		return errs.Wrap(errs.CodeServiceError, msg+": store is unavailable", err)
	}
	return nil
}

// classifyStatus falls back on the HTTP status when the S3 code is unknown.
// Returns nil when the status is not classifiable either.
func classifyStatus(resp miniogo.ErrorResponse, msg string, err error) *errs.Error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		if resp.Key != "" {
			return errs.Wrap(errs.CodeObjectNotFound, msg+": object does not exist", err)
		}
		return errs.Wrap(errs.CodeBucketNotFound, msg+": bucket does not exist", err)
	case http.StatusUnauthorized:
		return errs.Wrap(errs.CodeAuthInvalidCredentials, msg+": invalid credentials", err)
	case http.StatusForbidden:
		return errs.Wrap(errs.CodeAuthPermissionDenied, msg+": access denied", err)
	case http.StatusBadRequest:
		return errs.Wrap(errs.CodeValidationInvalidParam, msg+": invalid request parameter", err)
	case http.StatusRequestedRangeNotSatisfiable:
		return errs.Wrap(errs.CodeValidationInvalidRange, msg+": requested range not satisfiable", err)
	case http.StatusRequestEntityTooLarge:
		return errs.Wrap(errs.CodeValidationFileTooLarge, msg+": payload too large", err)
	case http.StatusConflict:
		return errs.Wrap(errs.CodeResourceConflict, msg+": resource conflict", err)
	case http.StatusTooManyRequests:
		return errs.Wrap(errs.CodeServiceRateLimited, msg+": store is throttling requests", err)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return errs.Wrap(errs.CodeServiceTimeout, msg+": store timed out", err)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusInternalServerError:
		return errs.Wrap(errs.CodeServiceError, msg+": store is unavailable", err)
	}
	return nil
}
