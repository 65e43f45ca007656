// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Command marquee is the terminal front end for Marquee.
//
//	marquee recommend "The Dark Knight Rises"
//	marquee titles --prefix "star" --limit 10
//	marquee carousel
//	marquee artifacts import --movies movies.json --similarity similarity.json --out marquee.db
//	marquee artifacts inspect --path marquee.db
//
// recommend, titles and carousel read the same configuration as the server
// (--config, CONFIG_PATH, environment). The artifacts commands only need
// their flags.
package main
