package mdpress

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (a *App) handleIndex(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	out, err := a.Engine.RenderListing("", page)
	if err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, out)
}

func (a *App) handleTag(c echo.Context) error {
	tag, err := url.PathUnescape(c.Param("tag"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	out, err := a.Engine.RenderListing(tag, page)
	if err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, out)
}

func (a *App) handlePost(c echo.Context) error {
	slug, err := url.PathUnescape(c.Param("slug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	out, err := a.Engine.RenderPost(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}
	if a.analytics != nil {
		// Fire and forget; a lost page view never delays the page.
		go func() {
			if err := a.analytics.Record(slug); err != nil {
				a.Echo.Logger.Warnf("record view %s: %v", slug, err)
			}
		}()
	}
	return c.HTMLBlob(http.StatusOK, out)
}

func (a *App) handleFeed(c echo.Context) error {
	out, err := a.Engine.RenderFeed()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", out)
}

func (a *App) handleSitemap(c echo.Context) error {
	entries, err := a.Engine.Sitemap()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, entries)
}

func (a *App) handleStats(c echo.Context) error {
	counts, err := a.analytics.TopPosts(25)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound && a.Views.NotFound != nil {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		if a.Views.ServerError != nil {
			_ = RenderStatus(c, code, a.Views.ServerError())
			return
		}
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
