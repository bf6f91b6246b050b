package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func newTestClient(signin, gql string) *Client {
	return NewClient(
		WithSignInEndpoint(signin),
		WithGraphQLEndpoint(gql),
	)
}

func TestSignIn(t *testing.T) {
	Convey("Given a sign-in endpoint", t, func() {
		ctx := context.Background()

		Convey("A JSON string literal body yields the token", func() {
			var gotMethod, gotAuth string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotAuth = r.Header.Get("Authorization")
				json.NewEncoder(w).Encode("tok-123")
			}))
			defer srv.Close()

			token, err := newTestClient(srv.URL, "").SignIn(ctx, "alice", "secret")
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "tok-123")
			So(gotMethod, ShouldEqual, http.MethodPost)
			So(gotAuth, ShouldStartWith, "Basic ")
		})

		Convey("An object body yields the first populated token field", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{
					"data": map[string]any{"accessToken": "tok-nested"},
				})
			}))
			defer srv.Close()

			token, err := newTestClient(srv.URL, "").SignIn(ctx, "alice", "secret")
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "tok-nested")
		})

		Convey("A raw JWT body is used verbatim after cleaning", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("\uFEFF  raw.jwt.token \n"))
			}))
			defer srv.Close()

			token, err := newTestClient(srv.URL, "").SignIn(ctx, "alice", "secret")
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "raw.jwt.token")
		})

		Convey("A non-2xx status is a sign-in failure", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, "").SignIn(ctx, "alice", "wrong")
			So(errors.Is(err, ErrSignInFailed), ShouldBeTrue)
		})

		Convey("A token-free object is rejected", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"hello": "world"})
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, "").SignIn(ctx, "alice", "secret")
			So(errors.Is(err, ErrNoToken), ShouldBeTrue)
		})
	})
}

func TestExtractToken(t *testing.T) {
	Convey("Given sign-in response bodies", t, func() {
		Convey("Each token field is tried in order", func() {
			So(extractToken([]byte(`{"token":"a"}`)), ShouldEqual, "a")
			So(extractToken([]byte(`{"accessToken":"b"}`)), ShouldEqual, "b")
			So(extractToken([]byte(`{"jwt":"c"}`)), ShouldEqual, "c")
			So(extractToken([]byte(`{"data":{"token":"d"}}`)), ShouldEqual, "d")
			So(extractToken([]byte(`{"data":{"accessToken":"e"}}`)), ShouldEqual, "e")
		})

		Convey("Empty and whitespace-only bodies yield nothing", func() {
			So(extractToken(nil), ShouldBeEmpty)
			So(extractToken([]byte("   ")), ShouldBeEmpty)
		})

		Convey("A BOM prefix is stripped", func() {
			So(extractToken([]byte("\uFEFFraw.jwt")), ShouldEqual, "raw.jwt")
		})
	})
}

func TestFetchUserData(t *testing.T) {
	Convey("Given a GraphQL endpoint", t, func() {
		ctx := context.Background()

		Convey("A successful response decodes into the payload", func() {
			var gotAuth, gotContentType, gotQuery string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				gotContentType = r.Header.Get("Content-Type")

				blob, _ := io.ReadAll(r.Body)
				var req struct {
					Query string `json:"query"`
				}
				json.Unmarshal(blob, &req)
				gotQuery = req.Query

				w.Write([]byte(`{"data":{"user":{"login":"alice"}}}`))
			}))
			defer srv.Close()

			raw, err := newTestClient("", srv.URL).FetchUserData(ctx, "tok")
			So(err, ShouldBeNil)
			So(raw.Empty(), ShouldBeFalse)
			So(gotAuth, ShouldEqual, "Bearer tok")
			So(gotContentType, ShouldEqual, "application/json")
			So(gotQuery, ShouldContainSubstring, "transactions_aggregate")
		})

		Convey("A BOM-wrapped token is cleaned before sending", func() {
			var gotAuth string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				w.Write([]byte(`{"data":{}}`))
			}))
			defer srv.Close()

			_, err := newTestClient("", srv.URL).FetchUserData(ctx, "\uFEFF tok ")
			So(err, ShouldBeNil)
			So(gotAuth, ShouldEqual, "Bearer tok")
		})

		Convey("GraphQL errors are joined into one error", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"errors":[{"message":"first"},{"message":"second"}]}`))
			}))
			defer srv.Close()

			_, err := newTestClient("", srv.URL).FetchUserData(ctx, "tok")
			So(errors.Is(err, ErrUpstream), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "first; second")
		})

		Convey("Expiry detail inside a 200 body still surfaces", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"errors":[{"message":"Could not verify JWT: JWTExpired"}]}`))
			}))
			defer srv.Close()

			_, err := newTestClient("", srv.URL).FetchUserData(ctx, "tok")
			So(err, ShouldNotBeNil)
			So(IsSessionExpired(err), ShouldBeTrue)
		})

		Convey("A non-2xx status without GraphQL errors reports the status", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(`{"data":null}`))
			}))
			defer srv.Close()

			_, err := newTestClient("", srv.URL).FetchUserData(ctx, "tok")
			So(errors.Is(err, ErrUpstream), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "502")
		})

		Convey("A non-JSON body reports an excerpt", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>gateway</html>"))
			}))
			defer srv.Close()

			_, err := newTestClient("", srv.URL).FetchUserData(ctx, "tok")
			So(errors.Is(err, ErrUpstream), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "gateway")
		})
	})
}

func TestIsSessionExpired(t *testing.T) {
	Convey("Given upstream errors", t, func() {
		Convey("JWT and expiry messages classify as expired", func() {
			So(IsSessionExpired(errors.New("Could not verify JWT: JWTExpired")), ShouldBeTrue)
			So(IsSessionExpired(errors.New("token has EXPIRED")), ShouldBeTrue)
			So(IsSessionExpired(errors.New("invalid jwt signature")), ShouldBeTrue)
		})

		Convey("Other failures do not", func() {
			So(IsSessionExpired(errors.New("connection refused")), ShouldBeFalse)
			So(IsSessionExpired(nil), ShouldBeFalse)
		})
	})
}
