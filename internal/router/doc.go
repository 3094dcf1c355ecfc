// Package router dispatches transport neutral requests to the route table.
//
// Routes are tried in registration order and the first match wins, so
// special paths such as /doctors/grouped must be registered before the
// generic /doctors/:id pattern. CORS, OPTIONS short-circuiting, the admin
// gate, id extraction and error mapping all happen here, once, for every
// transport binding.
package router
