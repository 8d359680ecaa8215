package feed

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:slash="http://purl.org/rss/1.0/modules/slash/">
  <channel>
    <title>Example Feed</title>
    <link>https://example.com/</link>
    <description>Posts from example.com</description>
    <item>
      <title>First</title>
      <link>/posts/1</link>
      <guid>post-1</guid>
      <description>&lt;p&gt;Hello &lt;b&gt;there&lt;/b&gt;&lt;/p&gt;</description>
      <pubDate>Fri, 01 Mar 2024 10:00:00 GMT</pubDate>
      <enclosure url="/media/1.jpg" length="1024" type="image/jpeg"/>
      <slash:comments>5</slash:comments>
    </item>
    <item>
      <title>Second</title>
      <link>https://example.com/posts/2</link>
      <guid>post-2</guid>
    </item>
  </channel>
</rss>`

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example Feed</title>
  <link href="https://example.com/"/>
  <link rel="self" href="https://example.com/atom.xml"/>
  <id>urn:example:feed</id>
  <updated>2024-03-01T10:00:00Z</updated>
  <entry>
    <title>First</title>
    <link href="https://example.com/posts/1"/>
    <id>urn:example:1</id>
    <updated>2024-03-01T10:00:00Z</updated>
    <content type="html">&lt;p&gt;Hello&lt;/p&gt;</content>
  </entry>
  <entry>
    <title>Second</title>
    <link href="https://example.com/posts/2"/>
    <id>urn:example:2</id>
    <updated>2024-03-02T10:00:00Z</updated>
  </entry>
</feed>`

const jsonFeed = `{
  "version": "https://jsonfeed.org/version/1.1",
  "title": "Example Feed",
  "home_page_url": "https://example.com/",
  "feed_url": "https://example.com/feed.json",
  "items": [
    {"id": "1", "url": "https://example.com/posts/1", "content_html": "<p>Hi</p>"},
    {"id": "2", "url": "https://example.com/posts/2", "content_text": "Plain"}
  ]
}`

const rssWithEmptySlashComments = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:slash="http://purl.org/rss/1.0/modules/slash/">
  <channel>
    <title>Comments Feed</title>
    <link>https://example.com/</link>
    <item>
      <title>No count</title>
      <link>https://example.com/posts/1</link>
      <slash:comments/>
    </item>
    <item>
      <title>Counted</title>
      <link>https://example.com/posts/2</link>
      <slash:comments>3</slash:comments>
    </item>
  </channel>
</rss>`

const rssWithBadSlashComments = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:slash="http://purl.org/rss/1.0/modules/slash/">
  <channel>
    <title>Broken Feed</title>
    <item>
      <title>Bad count</title>
      <link>https://example.com/posts/1</link>
      <slash:comments>many</slash:comments>
    </item>
  </channel>
</rss>`

// latin1Feed is ISO-8859-1 encoded: \xe9 is e-acute
const latin1Feed = "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
	"<rss version=\"2.0\" xmlns:slash=\"http://purl.org/rss/1.0/modules/slash/\">\n" +
	"<channel><title>Caf\xe9 News</title><link>https://example.com/</link>\n" +
	"<item><title>Cr\xe8me</title><link>https://example.com/1</link><slash:comments/></item>\n" +
	"</channel></rss>"
