package web

import "html/template"

// Rendering is deliberately minimal; the pages exist to carry the catalog
// listing, the forms, and flash messages.

var tplIndex = template.Must(template.New("index").Parse(`<!doctype html>
<title>Libris</title>
{{range .Flashes}}<p class="flash">{{.}}</p>{{end}}
{{if .User}}<p>Signed in as {{.User.Username}} ({{.User.Role}}) — <a href="/logout">Log out</a></p>
{{else}}<p><a href="/login">Log in</a> or <a href="/register">Register</a></p>{{end}}
<h1>Catalog</h1>
<ul>
{{range .Books}}<li>{{.Title}} — {{.Author}}{{if $.CopiesMode}} ({{.Copies}} copies){{else}} ({{.Status}}){{end}}
{{if $.User}} <form method="post" action="/delete_book/{{.ID}}"><button>Delete</button></form>{{end}}</li>
{{else}}<li>No books yet.</li>{{end}}
</ul>
{{if .User}}
<h2>Add a book</h2>
<form method="post" action="/add_book">
<input name="title" placeholder="Title" required>
<input name="author" placeholder="Author" required>
{{if .CopiesMode}}<input name="copies" type="number" min="0" value="1">
{{else}}<select name="status"><option value="available">Available</option><option value="unavailable">Unavailable</option></select>{{end}}
<button>Add</button>
</form>
{{end}}
`))

var tplLogin = template.Must(template.New("login").Parse(`<!doctype html>
<title>Log in</title>
{{range .Flashes}}<p class="flash">{{.}}</p>{{end}}
<h1>Log in</h1>
<form method="post" action="/login">
<input name="username" placeholder="Username" required>
<input name="password" type="password" placeholder="Password" required>
<button>Log in</button>
</form>
<p><a href="/register">Register</a></p>
`))

var tplRegister = template.Must(template.New("register").Parse(`<!doctype html>
<title>Register</title>
{{range .Flashes}}<p class="flash">{{.}}</p>{{end}}
<h1>Register</h1>
<form method="post" action="/register">
<input name="username" placeholder="Username" required>
<input name="email" type="email" placeholder="Email">
<input name="password" type="password" placeholder="Password" required>
<input name="confirm_password" type="password" placeholder="Confirm password">
<button>Register</button>
</form>
<p><a href="/login">Log in</a></p>
`))
