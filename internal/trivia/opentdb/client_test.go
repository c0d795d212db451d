package opentdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/trivia/internal/trivia"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, WithHTTPClient(srv.Client()))
}

func TestRequestSessionToken(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api_token.php", r.URL.Path)
		assert.Equal(t, "request", r.URL.Query().Get("command"))
		fmt.Fprint(w, `{"response_code":0,"response_message":"Token Generated Successfully!","token":"abc123"}`)
	})

	tok, err := c.RequestSessionToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok)
}

func TestRequestSessionToken_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantAs  any
	}{
		{name: "malformed json", status: 200, body: `{not json`, wantErr: trivia.ErrMalformedResponse},
		{name: "empty token", status: 200, body: `{"response_code":0,"token":""}`, wantErr: trivia.ErrMalformedResponse},
		{name: "server error", status: 503, body: ``, wantAs: new(*trivia.UnavailableError)},
		{name: "too many requests", status: 429, body: ``, wantAs: new(*trivia.RateLimitError)},
		{name: "rate limit code", status: 200, body: `{"response_code":5}`, wantAs: new(*trivia.RateLimitError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := c.RequestSessionToken(context.Background())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantAs != nil {
				assert.ErrorAs(t, err, tt.wantAs)
			}
		})
	}
}

func TestListCategories_DecodesNames(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api_category.php", r.URL.Path)
		fmt.Fprint(w, `{"trivia_categories":[{"id":9,"name":"General Knowledge"},{"id":13,"name":"Entertainment: Musicals &amp; Theatres"}]}`)
	})

	cats, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []trivia.Category{
		{ID: 9, Name: "General Knowledge"},
		{ID: 13, Name: "Entertainment: Musicals & Theatres"},
	}, cats)
}

func TestListCategories_MissingField(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	_, err := c.ListCategories(context.Background())
	assert.ErrorIs(t, err, trivia.ErrMalformedResponse)
}

func TestFetchQuestions_QueryAndDecoding(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api.php", r.URL.Path)
		assert.Equal(t, "3", q.Get("amount"))
		assert.Equal(t, "17", q.Get("category"))
		assert.Equal(t, "hard", q.Get("difficulty"))
		assert.Equal(t, "tok", q.Get("token"))
		fmt.Fprint(w, `{"response_code":0,"results":[
			{"category":"Science &amp; Nature","type":"multiple","difficulty":"hard",
			 "question":"What is &quot;H2O&quot;?","correct_answer":"Water",
			 "incorrect_answers":["Salt","Sand","Rock &#039;n&#039; roll"]}]}`)
	})

	qs, err := c.FetchQuestions(context.Background(), trivia.Query{
		Amount:     3,
		CategoryID: trivia.IntPtr(17),
		Difficulty: trivia.DifficultyHard,
		Token:      "tok",
	})
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "Science & Nature", qs[0].Category)
	assert.Equal(t, trivia.KindMultiple, qs[0].Kind)
	assert.Equal(t, `What is "H2O"?`, qs[0].Prompt)
	assert.Equal(t, "Water", qs[0].CorrectAnswer)
	assert.Equal(t, []string{"Salt", "Sand", "Rock 'n' roll"}, qs[0].IncorrectAnswers)
}

func TestFetchQuestions_OmitsAbsentCategory(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["category"]
		assert.False(t, ok, "category must be omitted")
		fmt.Fprint(w, `{"response_code":0,"results":[]}`)
	})

	qs, err := c.FetchQuestions(context.Background(), trivia.Query{Amount: 3})
	require.NoError(t, err)
	assert.Empty(t, qs)
}

func TestFetchQuestions_NoResultsIsEmptyBatch(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response_code":1,"results":[]}`)
	})

	qs, err := c.FetchQuestions(context.Background(), trivia.Query{Amount: 3})
	require.NoError(t, err)
	assert.NotNil(t, qs)
	assert.Empty(t, qs)
}

func TestFetchQuestions_ResponseCodes(t *testing.T) {
	tests := []struct {
		code    int
		wantErr error
	}{
		{code: 2, wantErr: trivia.ErrInvalidParameter},
		{code: 3, wantErr: trivia.ErrTokenNotFound},
		{code: 9, wantErr: trivia.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("code %d", tt.code), func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"response_code":%d,"results":[]}`, tt.code)
			})

			_, err := c.FetchQuestions(context.Background(), trivia.Query{Amount: 3, Token: "tok"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetchQuestions_ResetsExhaustedTokenOnce(t *testing.T) {
	var fetches, resets atomic.Int32
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api_token.php":
			assert.Equal(t, "reset", r.URL.Query().Get("command"))
			assert.Equal(t, "tok", r.URL.Query().Get("token"))
			resets.Add(1)
			fmt.Fprint(w, `{"response_code":0,"token":"tok"}`)
		case "/api.php":
			if fetches.Add(1) == 1 {
				fmt.Fprint(w, `{"response_code":4,"results":[]}`)
				return
			}
			fmt.Fprint(w, `{"response_code":0,"results":[{"category":"Art","type":"boolean","difficulty":"easy","question":"Q","correct_answer":"True","incorrect_answers":["False"]}]}`)
		}
	})

	qs, err := c.FetchQuestions(context.Background(), trivia.Query{Amount: 1, Token: "tok"})
	require.NoError(t, err)
	assert.Len(t, qs, 1)
	assert.Equal(t, int32(2), fetches.Load())
	assert.Equal(t, int32(1), resets.Load())
}

func TestFetchQuestions_ExhaustedAfterReset(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api_token.php" {
			fmt.Fprint(w, `{"response_code":0,"token":"tok"}`)
			return
		}
		fmt.Fprint(w, `{"response_code":4,"results":[]}`)
	})

	_, err := c.FetchQuestions(context.Background(), trivia.Query{Amount: 1, Token: "tok"})
	assert.ErrorIs(t, err, trivia.ErrTokenExhausted)
}

func TestFetchQuestions_RejectsNonPositiveAmount(t *testing.T) {
	c := New("http://127.0.0.1:0")
	_, err := c.FetchQuestions(context.Background(), trivia.Query{Amount: 0})
	assert.ErrorIs(t, err, trivia.ErrInvalidParameter)
}

func TestFetchQuestions_ContextCancelled(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchQuestions(ctx, trivia.Query{Amount: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
