/*
Package usersdk provides a client SDK for the users service.

# Overview

The service exposes a users resource (plain CRUD with pagination) and an auth
resource (signup, login, password reset, profile). The SDK wraps both.

# SDKClient vs Session

  - SDKClient: public endpoints and the flows that produce a session
  - Session: holds an access token and calls the endpoints that need one

Create an SDKClient and log in:

	client := usersdk.NewSDKClient("http://localhost:3000")

	session, err := client.Login(ctx, "john@example.com", "s3cret-pass")
	if usersdk.IsUnauthorized(err) {
		// wrong password
	}

	user, err := session.Profile(ctx)

Sessions are not refreshed. Tokens are issued without an expiry unless the
service is configured with one; after expiry, log in again.

# Users

	page, err := client.ListUsers(ctx, usersdk.ListUsersParams{Page: 2, PerPage: 20, Search: "doe"})
	for _, u := range page.Data {
		fmt.Println(u.ID, u.Email)
	}

	name := "Jane"
	user, err := client.UpdateUser(ctx, id, usersdk.UpdateUserRequest{Name: &name})

# Password Reset

ForgotPassword makes the service email a link of the form

	<frontend>/auth/reset-password?id=<id>&access-token=<token>

The frontend then posts both values with the new password:

	session, err := client.ResetPassword(ctx, usersdk.ResetPasswordRequest{
		ID:          id,
		Password:    "n3w-s3cret-pass",
		AccessToken: token,
	})

A reset token is bound to the password hash it was issued against, so it stops
working once the password changes.

# Errors

Every non-2xx response becomes an *APIError. Validation failures carry one
message per violation:

	var apiErr *usersdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
		for _, msg := range apiErr.Messages {
			fmt.Println(msg)
		}
	}

IsNotFound, IsConflict and IsUnauthorized cover the common checks.
*/
package usersdk
